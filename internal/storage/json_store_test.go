package storage

import (
	"path/filepath"
	"testing"

	"github.com/studynest/studynest/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "studynest.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return store
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studynest.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("Second Init() should fail when storage already exists")
	}
}

func TestJSONStore_LoadBeforeInitFails(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load() on missing storage should fail")
	}
}

func TestJSONStore_DefaultSettings(t *testing.T) {
	store := setupJSONStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.DefaultDays != 7 {
		t.Errorf("DefaultDays = %d, want 7", settings.DefaultDays)
	}
	if settings.MaxSubjects != 10 {
		t.Errorf("MaxSubjects = %d, want 10", settings.MaxSubjects)
	}
}

func TestJSONStore_SubjectOrderPreserved(t *testing.T) {
	store := setupJSONStore(t)

	names := []string{"Math", "Physics", "Chemistry", "Biology"}
	for i, name := range names {
		sub := models.Subject{ID: name, Name: name, Hours: i + 1}
		if err := store.AddSubject(sub); err != nil {
			t.Fatalf("AddSubject(%s) failed: %v", name, err)
		}
	}

	// Reload from disk to prove round-trip keeps order
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	subjects, err := reloaded.GetAllSubjects()
	if err != nil {
		t.Fatalf("GetAllSubjects() failed: %v", err)
	}
	if len(subjects) != len(names) {
		t.Fatalf("Expected %d subjects, got %d", len(names), len(subjects))
	}
	for i, name := range names {
		if subjects[i].Name != name {
			t.Errorf("Subject %d = %s, want %s", i, subjects[i].Name, name)
		}
	}
}

func TestJSONStore_SubjectSoftDeleteAndRestore(t *testing.T) {
	store := setupJSONStore(t)

	sub := models.Subject{ID: "s1", Name: "Math", Hours: 4}
	if err := store.AddSubject(sub); err != nil {
		t.Fatalf("AddSubject() failed: %v", err)
	}

	if err := store.DeleteSubject("s1"); err != nil {
		t.Fatalf("DeleteSubject() failed: %v", err)
	}

	if _, err := store.GetSubject("s1"); err == nil {
		t.Error("GetSubject() should not return a deleted subject")
	}

	all, err := store.GetAllSubjectsIncludingDeleted()
	if err != nil {
		t.Fatalf("GetAllSubjectsIncludingDeleted() failed: %v", err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("Deleted subject should remain with deleted_at set, got %+v", all)
	}

	if err := store.RestoreSubject("s1"); err != nil {
		t.Fatalf("RestoreSubject() failed: %v", err)
	}
	if _, err := store.GetSubject("s1"); err != nil {
		t.Errorf("GetSubject() after restore failed: %v", err)
	}

	// Restoring a live subject is an error
	if err := store.RestoreSubject("s1"); err == nil {
		t.Error("RestoreSubject() on a non-deleted subject should fail")
	}
}

func TestJSONStore_PlanRoundTrip(t *testing.T) {
	store := setupJSONStore(t)

	plan := models.StudyPlan{
		ID:          "p1",
		GeneratedAt: "2026-08-30T10:00:00Z",
		Days:        2,
		Subjects: []models.Subject{
			{ID: "s1", Name: "Math", Hours: 6},
			{ID: "s2", Name: "Physics", Hours: 4},
		},
		Schedule: models.Schedule{
			{Day: 1, Entries: []models.Assignment{{Subject: "Math", Hours: 5}}},
			{Day: 2, Entries: []models.Assignment{
				{Subject: "Math", Hours: 1},
				{Subject: "Physics", Hours: 4},
			}},
		},
	}

	if err := store.SavePlan(plan); err != nil {
		t.Fatalf("SavePlan() failed: %v", err)
	}

	// Round-trip through disk
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	got, err := reloaded.GetPlan("p1")
	if err != nil {
		t.Fatalf("GetPlan() failed: %v", err)
	}

	if got.Days != 2 || len(got.Schedule) != 2 {
		t.Fatalf("Round-tripped plan shape wrong: %+v", got)
	}
	if got.Schedule.TotalHours() != 10 {
		t.Errorf("Round-tripped plan lost hours: got %d, want 10", got.Schedule.TotalHours())
	}
	if got.Schedule[1].Entries[1].Label() != "Physics - 4 hrs" {
		t.Errorf("Unexpected entry label: %q", got.Schedule[1].Entries[1].Label())
	}
}

func TestJSONStore_SavePlanWithDeletedAtRejected(t *testing.T) {
	store := setupJSONStore(t)

	deleted := "2026-08-30T10:00:00Z"
	plan := models.StudyPlan{ID: "p1", GeneratedAt: deleted, Days: 1, DeletedAt: &deleted}
	if err := store.SavePlan(plan); err == nil {
		t.Error("SavePlan() with deleted_at set should fail")
	}
}

func TestJSONStore_LatestPlan(t *testing.T) {
	store := setupJSONStore(t)

	plans := []models.StudyPlan{
		{ID: "p1", GeneratedAt: "2026-08-28T09:00:00Z", Days: 1},
		{ID: "p2", GeneratedAt: "2026-08-30T09:00:00Z", Days: 2},
		{ID: "p3", GeneratedAt: "2026-08-29T09:00:00Z", Days: 3},
	}
	for _, p := range plans {
		if err := store.SavePlan(p); err != nil {
			t.Fatalf("SavePlan(%s) failed: %v", p.ID, err)
		}
	}

	latest, err := store.GetLatestPlan()
	if err != nil {
		t.Fatalf("GetLatestPlan() failed: %v", err)
	}
	if latest.ID != "p2" {
		t.Errorf("GetLatestPlan() = %s, want p2", latest.ID)
	}

	// Deleting the latest plan surfaces the next most recent
	if err := store.DeletePlan("p2"); err != nil {
		t.Fatalf("DeletePlan() failed: %v", err)
	}
	latest, err = store.GetLatestPlan()
	if err != nil {
		t.Fatalf("GetLatestPlan() failed: %v", err)
	}
	if latest.ID != "p3" {
		t.Errorf("GetLatestPlan() after delete = %s, want p3", latest.ID)
	}

	if err := store.RestorePlan("p2"); err != nil {
		t.Fatalf("RestorePlan() failed: %v", err)
	}
	latest, _ = store.GetLatestPlan()
	if latest.ID != "p2" {
		t.Errorf("GetLatestPlan() after restore = %s, want p2", latest.ID)
	}
}
