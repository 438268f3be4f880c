package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/studynest/studynest/internal/constants"
	"github.com/studynest/studynest/internal/models"
)

type Store struct {
	Version  int                         `json:"version"`
	Settings models.Settings             `json:"settings"`
	Subjects []models.Subject            `json:"subjects"`
	Plans    map[string]models.StudyPlan `json:"plans"` // plan ID -> plan
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: models.Settings{
			DefaultDays: constants.DefaultDefaultDays,
			MaxSubjects: constants.DefaultMaxSubjects,
		},
		Subjects: []models.Subject{},
		Plans:    make(map[string]models.StudyPlan),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studynest init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Subjects == nil {
		s.store.Subjects = []models.Subject{}
	}
	if s.store.Plans == nil {
		s.store.Plans = make(map[string]models.StudyPlan)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddSubject(subject models.Subject) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	subject.Position = len(s.store.Subjects)
	s.store.Subjects = append(s.store.Subjects, subject)
	return s.save()
}

func (s *JSONStore) GetSubject(id string) (models.Subject, error) {
	if s.store == nil {
		return models.Subject{}, fmt.Errorf("storage not loaded")
	}

	for _, subject := range s.store.Subjects {
		if subject.ID == id && subject.DeletedAt == nil {
			return subject, nil
		}
	}
	return models.Subject{}, fmt.Errorf("subject not found: %s", id)
}

func (s *JSONStore) GetAllSubjects() ([]models.Subject, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	subjects := make([]models.Subject, 0, len(s.store.Subjects))
	for _, subject := range s.store.Subjects {
		if subject.DeletedAt == nil {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (s *JSONStore) GetAllSubjectsIncludingDeleted() ([]models.Subject, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	subjects := make([]models.Subject, len(s.store.Subjects))
	copy(subjects, s.store.Subjects)
	return subjects, nil
}

func (s *JSONStore) UpdateSubject(subject models.Subject) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, existing := range s.store.Subjects {
		if existing.ID == subject.ID {
			// Keep catalog order stable across edits
			subject.Position = existing.Position
			s.store.Subjects[i] = subject
			return s.save()
		}
	}
	return fmt.Errorf("subject not found: %s", subject.ID)
}

func (s *JSONStore) DeleteSubject(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, subject := range s.store.Subjects {
		if subject.ID == id {
			now := time.Now().UTC().Format(time.RFC3339)
			s.store.Subjects[i].DeletedAt = &now
			return s.save()
		}
	}
	return fmt.Errorf("subject not found: %s", id)
}

func (s *JSONStore) RestoreSubject(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, subject := range s.store.Subjects {
		if subject.ID == id {
			if subject.DeletedAt == nil {
				return fmt.Errorf("cannot restore a subject that is not deleted: %s", id)
			}
			s.store.Subjects[i].DeletedAt = nil
			return s.save()
		}
	}
	return fmt.Errorf("subject not found: %s", id)
}

func (s *JSONStore) SavePlan(plan models.StudyPlan) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Deletion state is managed through DeletePlan/RestorePlan only
	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a plan with deleted_at set; use DeletePlan to soft-delete or RestorePlan to restore")
	}

	s.store.Plans[plan.ID] = plan
	return s.save()
}

func (s *JSONStore) GetPlan(id string) (models.StudyPlan, error) {
	if s.store == nil {
		return models.StudyPlan{}, fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Plans[id]
	if !ok || plan.DeletedAt != nil {
		return models.StudyPlan{}, fmt.Errorf("plan not found: %s", id)
	}
	return plan, nil
}

func (s *JSONStore) GetLatestPlan() (models.StudyPlan, error) {
	if s.store == nil {
		return models.StudyPlan{}, fmt.Errorf("storage not loaded")
	}

	var latest models.StudyPlan
	found := false
	for _, plan := range s.store.Plans {
		if plan.DeletedAt != nil {
			continue
		}
		if !found || plan.GeneratedAt > latest.GeneratedAt {
			latest = plan
			found = true
		}
	}
	if !found {
		return models.StudyPlan{}, fmt.Errorf("no plans found")
	}
	return latest, nil
}

func (s *JSONStore) GetAllPlans() ([]models.StudyPlan, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	plans := make([]models.StudyPlan, 0, len(s.store.Plans))
	for _, plan := range s.store.Plans {
		if plan.DeletedAt == nil {
			plans = append(plans, plan)
		}
	}
	// Newest first
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].GeneratedAt > plans[j].GeneratedAt
	})
	return plans, nil
}

func (s *JSONStore) DeletePlan(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Plans[id]
	if !ok {
		return fmt.Errorf("plan not found: %s", id)
	}
	if plan.DeletedAt != nil {
		return fmt.Errorf("plan already deleted: %s", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	plan.DeletedAt = &now
	s.store.Plans[id] = plan
	return s.save()
}

func (s *JSONStore) RestorePlan(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Plans[id]
	if !ok {
		return fmt.Errorf("plan not found: %s", id)
	}
	if plan.DeletedAt == nil {
		return fmt.Errorf("cannot restore a plan that is not deleted: %s", id)
	}

	plan.DeletedAt = nil
	s.store.Plans[id] = plan
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple studynest processes against the same storage path is
//     not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
