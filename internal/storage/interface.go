package storage

import "github.com/studynest/studynest/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Subjects. Catalog order is the order subjects were added in; every
	// read returns subjects in that order.
	AddSubject(models.Subject) error
	GetSubject(id string) (models.Subject, error)
	GetAllSubjects() ([]models.Subject, error)
	GetAllSubjectsIncludingDeleted() ([]models.Subject, error)
	UpdateSubject(models.Subject) error
	DeleteSubject(id string) error
	RestoreSubject(id string) error

	// Plans
	SavePlan(models.StudyPlan) error
	GetPlan(id string) (models.StudyPlan, error)
	GetLatestPlan() (models.StudyPlan, error)
	GetAllPlans() ([]models.StudyPlan, error)
	DeletePlan(id string) error
	RestorePlan(id string) error

	// Utils
	GetConfigPath() string
}
