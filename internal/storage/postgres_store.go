package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/studynest/studynest/internal/constants"
	"github.com/studynest/studynest/internal/models"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

const postgresSchema = `
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

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// ValidateConnString checks that a connection string is a valid PostgreSQL
// connection string (URI or DSN) and that it does not embed a password.
// Passwords belong in the OS keyring, .pgpass, or the environment.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
	} else {
		for _, pair := range strings.Fields(connStr) {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := ValidateConnString(connStr)
	return errors.Is(err, ErrEmbeddedCredentials)
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
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

func (s *PostgresStore) AddSubject(subject models.Subject) error {
	var max sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(position) FROM subjects").Scan(&max); err != nil {
		return err
	}
	position := 0
	if max.Valid {
		position = int(max.Int64) + 1
	}

	_, err := s.db.Exec(
		"INSERT INTO subjects (id, name, hours, position, deleted_at) VALUES ($1, $2, $3, $4, NULL)",
		subject.ID, subject.Name, subject.Hours, position,
	)
	return err
}

func (s *PostgresStore) GetSubject(id string) (models.Subject, error) {
	row := s.db.QueryRow(
		"SELECT id, name, hours, position, deleted_at FROM subjects WHERE id = $1 AND deleted_at IS NULL", id)

	sub, err := scanSubject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Subject{}, fmt.Errorf("subject not found: %s", id)
		}
		return models.Subject{}, err
	}
	return sub, nil
}

func (s *PostgresStore) getSubjects(includeDeleted bool) ([]models.Subject, error) {
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

func (s *PostgresStore) GetAllSubjects() ([]models.Subject, error) {
	return s.getSubjects(false)
}

func (s *PostgresStore) GetAllSubjectsIncludingDeleted() ([]models.Subject, error) {
	return s.getSubjects(true)
}

func (s *PostgresStore) UpdateSubject(subject models.Subject) error {
	res, err := s.db.Exec(
		"UPDATE subjects SET name = $1, hours = $2 WHERE id = $3",
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

func (s *PostgresStore) DeleteSubject(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"UPDATE subjects SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", now, id)
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

func (s *PostgresStore) RestoreSubject(id string) error {
	res, err := s.db.Exec(
		"UPDATE subjects SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL", id)
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

func (s *PostgresStore) SavePlan(plan models.StudyPlan) error {
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
		INSERT INTO plans (id, generated_at, days, subjects, schedule, deleted_at)
		VALUES ($1, $2, $3, $4, $5, NULL)
		ON CONFLICT (id) DO UPDATE SET
			generated_at = EXCLUDED.generated_at,
			days = EXCLUDED.days,
			subjects = EXCLUDED.subjects,
			schedule = EXCLUDED.schedule,
			deleted_at = NULL`,
		plan.ID, plan.GeneratedAt, plan.Days, string(subjects), string(schedule),
	)
	return err
}

func (s *PostgresStore) GetPlan(id string) (models.StudyPlan, error) {
	row := s.db.QueryRow(
		"SELECT id, generated_at, days, subjects, schedule, deleted_at FROM plans WHERE id = $1 AND deleted_at IS NULL", id)

	plan, err := scanPlan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.StudyPlan{}, fmt.Errorf("plan not found: %s", id)
		}
		return models.StudyPlan{}, err
	}
	return plan, nil
}

func (s *PostgresStore) GetLatestPlan() (models.StudyPlan, error) {
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

func (s *PostgresStore) GetAllPlans() ([]models.StudyPlan, error) {
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

func (s *PostgresStore) DeletePlan(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"UPDATE plans SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", now, id)
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

func (s *PostgresStore) RestorePlan(id string) error {
	res, err := s.db.Exec(
		"UPDATE plans SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL", id)
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

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
