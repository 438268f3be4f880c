package constants

const (
	// General Settings
	SettingDefaultDays = "default_days"
	SettingMaxSubjects = "max_subjects"

	// Default Settings Values
	DefaultDefaultDays = 7
	DefaultMaxSubjects = 10
)
