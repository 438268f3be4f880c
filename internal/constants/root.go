package constants

const (
	AppName            = "studynest"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studynest/studynest.db"
	Version            = "v0.3.0"

	// DBConnectionEnvVar is checked before the OS keyring when resolving a
	// PostgreSQL connection string.
	DBConnectionEnvVar = "STUDYNEST_DB_CONNECTION"

	// TimestampFormat is the format used for persisted timestamps (RFC3339)
	TimestampFormat = "2006-01-02T15:04:05Z07:00"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studynest-"
)
