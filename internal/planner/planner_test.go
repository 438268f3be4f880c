package planner

import (
	"errors"
	"testing"

	"github.com/studynest/studynest/internal/models"
)

func labels(day models.DayAssignments) []string {
	out := make([]string, 0, len(day.Entries))
	for _, e := range day.Entries {
		out = append(out, e.Label())
	}
	return out
}

func assertLabels(t *testing.T, day models.DayAssignments, want []string) {
	t.Helper()
	got := labels(day)
	if len(got) != len(want) {
		t.Fatalf("Day %d: expected %d entries %v, got %v", day.Day, len(want), want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Day %d entry %d: expected %q, got %q", day.Day, i, want[i], got[i])
		}
	}
}

func TestGenerate_SplitsSubjectAcrossDays(t *testing.T) {
	planner := New()

	subjects := []models.Subject{
		{Name: "Math", Hours: 6},
		{Name: "Physics", Hours: 4},
	}

	schedule, err := planner.Generate(subjects, 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(schedule) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(schedule))
	}

	// total 10 hrs over 2 days -> 5 hrs/day
	assertLabels(t, schedule[0], []string{"Math - 5 hrs"})
	assertLabels(t, schedule[1], []string{"Math - 1 hrs", "Physics - 4 hrs"})

	if schedule.TotalHours() != 10 {
		t.Errorf("Expected 10 total hours, got %d", schedule.TotalHours())
	}
}

func TestGenerate_LeftoverHoursAdjustedOntoLastDay(t *testing.T) {
	planner := New()

	subjects := []models.Subject{{Name: "History", Hours: 7}}

	schedule, err := planner.Generate(subjects, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 7 hrs over 3 days -> 2 hrs/day, 1 hr left unplaced by the main loop
	assertLabels(t, schedule[0], []string{"History - 2 hrs"})
	assertLabels(t, schedule[1], []string{"History - 2 hrs"})
	assertLabels(t, schedule[2], []string{"History - 2 hrs", "Remaining Subjects - 1 hrs (Adjusted)"})

	if schedule.TotalHours() != 7 {
		t.Errorf("Expected 7 total hours, got %d", schedule.TotalHours())
	}
}

func TestGenerate_HourConservation(t *testing.T) {
	planner := New()

	cases := []struct {
		name     string
		subjects []models.Subject
		days     int
	}{
		{"single subject even split", []models.Subject{{Name: "A", Hours: 8}}, 4},
		{"single subject with remainder", []models.Subject{{Name: "A", Hours: 11}}, 4},
		{"more days than hours", []models.Subject{{Name: "A", Hours: 2}}, 6},
		{"many small subjects", []models.Subject{
			{Name: "A", Hours: 1}, {Name: "B", Hours: 1}, {Name: "C", Hours: 1},
			{Name: "D", Hours: 1}, {Name: "E", Hours: 1},
		}, 2},
		{"uneven mix", []models.Subject{
			{Name: "A", Hours: 13}, {Name: "B", Hours: 5}, {Name: "C", Hours: 9},
		}, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total := 0
			for _, sub := range tc.subjects {
				total += sub.Hours
			}

			schedule, err := planner.Generate(tc.subjects, tc.days)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			if len(schedule) != tc.days {
				t.Errorf("Expected %d days, got %d", tc.days, len(schedule))
			}
			if schedule.TotalHours() != total {
				t.Errorf("Expected %d total hours, got %d", total, schedule.TotalHours())
			}
		})
	}
}

func TestGenerate_PreservesSubjectOrder(t *testing.T) {
	planner := New()

	subjects := []models.Subject{
		{Name: "Zoology", Hours: 3},
		{Name: "Algebra", Hours: 3},
		{Name: "Music", Hours: 3},
	}

	schedule, err := planner.Generate(subjects, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var seen []string
	for _, day := range schedule {
		for _, entry := range day.Entries {
			if entry.Adjusted {
				continue
			}
			if len(seen) == 0 || seen[len(seen)-1] != entry.Subject {
				seen = append(seen, entry.Subject)
			}
		}
	}

	want := []string{"Zoology", "Algebra", "Music"}
	if len(seen) != len(want) {
		t.Fatalf("Expected subject order %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Expected subject order %v, got %v", want, seen)
			break
		}
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	planner := New()

	subjects := []models.Subject{
		{Name: "Math", Hours: 6},
		{Name: "Physics", Hours: 4},
	}

	if _, err := planner.Generate(subjects, 2); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if subjects[0].Hours != 6 || subjects[1].Hours != 4 {
		t.Errorf("Input subjects were mutated: %+v", subjects)
	}
}

func TestGenerate_InvalidDayCount(t *testing.T) {
	planner := New()
	subjects := []models.Subject{{Name: "A", Hours: 3}}

	for _, days := range []int{0, -3} {
		_, err := planner.Generate(subjects, days)
		if err == nil {
			t.Fatalf("Expected error for days=%d, got nil", days)
		}
		if !errors.Is(err, ErrInvalidDayCount) {
			t.Errorf("Expected ErrInvalidDayCount for days=%d, got %v", days, err)
		}
		if err.Error() != "Number of days must be at least 1." {
			t.Errorf("Unexpected error message: %q", err.Error())
		}
	}
}

func TestGenerate_EmptySubjects(t *testing.T) {
	planner := New()

	schedule, err := planner.Generate(nil, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(schedule) != 5 {
		t.Fatalf("Expected 5 day entries, got %d", len(schedule))
	}
	for _, day := range schedule {
		if len(day.Entries) != 0 {
			t.Errorf("Day %d: expected no entries, got %v", day.Day, labels(day))
		}
	}
}

func TestGenerate_ZeroTotalHours(t *testing.T) {
	planner := New()

	// Degenerate catalog with all hours already at zero must not hang or
	// divide by zero; every day comes back empty.
	subjects := []models.Subject{{Name: "A", Hours: 0}, {Name: "B", Hours: 0}}

	schedule, err := planner.Generate(subjects, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(schedule) != 3 {
		t.Fatalf("Expected 3 day entries, got %d", len(schedule))
	}
	for _, day := range schedule {
		if len(day.Entries) != 0 {
			t.Errorf("Day %d: expected no entries, got %v", day.Day, labels(day))
		}
	}
}

func TestGenerate_DayNumbersAreSequential(t *testing.T) {
	planner := New()

	schedule, err := planner.Generate([]models.Subject{{Name: "A", Hours: 9}}, 4)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i, day := range schedule {
		if day.Day != i+1 {
			t.Errorf("Expected day %d at index %d, got %d", i+1, i, day.Day)
		}
	}
}
