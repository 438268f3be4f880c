package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/studynest/studynest/internal/constants"
	"github.com/studynest/studynest/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS subjects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	hours      INTEGER NOT NULL,
	position   INTEGER NOT NULL,
	deleted_at TEXT
);

CREATE TABLE IF NOT EXISTS plans (
	id           TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	days         INTEGER NOT NULL,
	subjects     TEXT NOT NULL,
	schedule     TEXT NOT NULL,
	deleted_at   TEXT
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if database already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			DefaultDays: constants.DefaultDefaultDays,
			MaxSubjects: constants.DefaultMaxSubjects,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studynest init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetDB exposes the underlying connection for health checks.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingDefaultDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultDays); err != nil {
				return models.Settings{}, fmt.Errorf("parsing default_days: %w", err)
			}
		case constants.SettingMaxSubjects:
			if _, err := fmt.Sscanf(value, "%d", &settings.MaxSubjects); err != nil {
				return models.Settings{}, fmt.Errorf("parsing max_subjects: %w", err)
			}
		}
		count++
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(constants.SettingDefaultDays, fmt.Sprintf("%d", settings.DefaultDays)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingMaxSubjects, fmt.Sprintf("%d", settings.MaxSubjects)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddSubject(subject models.Subject) error {
	// Append to the end of the catalog
	var max sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(position) FROM subjects").Scan(&max); err != nil {
		return err
	}
	position := 0
	if max.Valid {
		position = int(max.Int64) + 1
	}

	_, err := s.db.Exec(
		"INSERT INTO subjects (id, name, hours, position, deleted_at) VALUES (?, ?, ?, ?, NULL)",
		subject.ID, subject.Name, subject.Hours, position,
	)
	return err
}

func scanSubject(row interface{ Scan(...any) error }) (models.Subject, error) {
	var sub models.Subject
	var deletedAt sql.NullString

	if err := row.Scan(&sub.ID, &sub.Name, &sub.Hours, &sub.Position, &deletedAt); err != nil {
		return models.Subject{}, err
	}
	if deletedAt.Valid {
		sub.DeletedAt = &deletedAt.String
	}
	return sub, nil
}

func (s *SQLiteStore) GetSubject(id string) (models.Subject, error) {
	row := s.db.QueryRow(
		"SELECT id, name, hours, position, deleted_at FROM subjects WHERE id = ? AND deleted_at IS NULL", id)

	sub, err := scanSubject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Subject{}, fmt.Errorf("subject not found: %s", id)
		}
		return models.Subject{}, err
	}
	return sub, nil
}

func (s *SQLiteStore) getSubjects(includeDeleted bool) ([]models.Subject, error) {
	query := "SELECT id, name, hours, position, deleted_at FROM subjects ORDER BY position"
	if !includeDeleted {
		query = "SELECT id, name, hours, position, deleted_at FROM subjects WHERE deleted_at IS NULL ORDER BY position"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

func (s *SQLiteStore) GetAllSubjects() ([]models.Subject, error) {
	return s.getSubjects(false)
}

func (s *SQLiteStore) GetAllSubjectsIncludingDeleted() ([]models.Subject, error) {
	return s.getSubjects(true)
}

func (s *SQLiteStore) UpdateSubject(subject models.Subject) error {
	res, err := s.db.Exec(
		"UPDATE subjects SET name = ?, hours = ? WHERE id = ?",
		subject.Name, subject.Hours, subject.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("subject not found: %s", subject.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteSubject(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"UPDATE subjects SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("subject not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) RestoreSubject(id string) error {
	res, err := s.db.Exec(
		"UPDATE subjects SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("cannot restore a subject that is not deleted: %s", id)
	}
	return nil
}

func (s *SQLiteStore) SavePlan(plan models.StudyPlan) error {
	if plan.DeletedAt != nil {
		return fmt.Errorf("cannot save a plan with deleted_at set; use DeletePlan to soft-delete or RestorePlan to restore")
	}

	subjects, err := json.Marshal(plan.Subjects)
	if err != nil {
		return fmt.Errorf("failed to serialize plan subjects: %w", err)
	}
	schedule, err := json.Marshal(plan.Schedule)
	if err != nil {
		return fmt.Errorf("failed to serialize plan schedule: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO plans (id, generated_at, days, subjects, schedule, deleted_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		plan.ID, plan.GeneratedAt, plan.Days, string(subjects), string(schedule),
	)
	return err
}

func scanPlan(row interface{ Scan(...any) error }) (models.StudyPlan, error) {
	var plan models.StudyPlan
	var subjects, schedule string
	var deletedAt sql.NullString

	if err := row.Scan(&plan.ID, &plan.GeneratedAt, &plan.Days, &subjects, &schedule, &deletedAt); err != nil {
		return models.StudyPlan{}, err
	}
	if err := json.Unmarshal([]byte(subjects), &plan.Subjects); err != nil {
		return models.StudyPlan{}, fmt.Errorf("failed to parse plan subjects: %w", err)
	}
	if err := json.Unmarshal([]byte(schedule), &plan.Schedule); err != nil {
		return models.StudyPlan{}, fmt.Errorf("failed to parse plan schedule: %w", err)
	}
	if deletedAt.Valid {
		plan.DeletedAt = &deletedAt.String
	}
	return plan, nil
}

func (s *SQLiteStore) GetPlan(id string) (models.StudyPlan, error) {
	row := s.db.QueryRow(
		"SELECT id, generated_at, days, subjects, schedule, deleted_at FROM plans WHERE id = ? AND deleted_at IS NULL", id)

	plan, err := scanPlan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.StudyPlan{}, fmt.Errorf("plan not found: %s", id)
		}
		return models.StudyPlan{}, err
	}
	return plan, nil
}

func (s *SQLiteStore) GetLatestPlan() (models.StudyPlan, error) {
	row := s.db.QueryRow(`
		SELECT id, generated_at, days, subjects, schedule, deleted_at FROM plans
		WHERE deleted_at IS NULL ORDER BY generated_at DESC LIMIT 1`)

	plan, err := scanPlan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.StudyPlan{}, fmt.Errorf("no plans found")
		}
		return models.StudyPlan{}, err
	}
	return plan, nil
}

func (s *SQLiteStore) GetAllPlans() ([]models.StudyPlan, error) {
	rows, err := s.db.Query(`
		SELECT id, generated_at, days, subjects, schedule, deleted_at FROM plans
		WHERE deleted_at IS NULL ORDER BY generated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.StudyPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (s *SQLiteStore) DeletePlan(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"UPDATE plans SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("plan not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) RestorePlan(id string) error {
	res, err := s.db.Exec(
		"UPDATE plans SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("cannot restore a plan that is not deleted: %s", id)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
