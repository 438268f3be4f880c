package models

// Settings represents application-wide settings
type Settings struct {
	DefaultDays int `json:"default_days"` // day count used when plan generation is not given one
	MaxSubjects int `json:"max_subjects"` // upper bound on active catalog size
}
