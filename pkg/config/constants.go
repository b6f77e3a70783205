package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// STOCKPILOT_* names so the prefix mostly matters for unnamed fields.
const EnvPrefix = "stockpilot"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced in error messages and tests.
const (
	EnvDBDSN  = "STOCKPILOT_DB_DSN"
	EnvDBHost = "STOCKPILOT_DB_HOST"
	EnvDBUser = "STOCKPILOT_DB_USER"
	EnvDBName = "STOCKPILOT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
