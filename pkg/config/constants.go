package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SELLERDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "SELLERDESK_APP_ENV"
	EnvPort     = "SELLERDESK_APP_PORT"
	EnvRedisURL = "SELLERDESK_REDIS_URL"

	EnvDBDSN  = "SELLERDESK_DB_DSN"
	EnvDBHost = "SELLERDESK_DB_HOST"
	EnvDBUser = "SELLERDESK_DB_USER"
	EnvDBName = "SELLERDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
