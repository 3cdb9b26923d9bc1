package config

// EnvPrefix namespaces every variable read by Load.
const EnvPrefix = "DAYPASS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "DAYPASS_APP_ENV"
	EnvPort         = "DAYPASS_APP_PORT"
	EnvLogLevel     = "DAYPASS_LOG_LEVEL"
	EnvLogWarnStack = "DAYPASS_LOG_WARN_STACK"

	EnvDBDSN      = "DAYPASS_DB_DSN"
	EnvDBHost     = "DAYPASS_DB_HOST"
	EnvDBPort     = "DAYPASS_DB_PORT"
	EnvDBUser     = "DAYPASS_DB_USER"
	EnvDBPassword = "DAYPASS_DB_PASSWORD"
	EnvDBName     = "DAYPASS_DB_NAME"
	EnvDBSSLMode  = "DAYPASS_DB_SSLMODE"

	EnvRedisURL  = "DAYPASS_REDIS_URL"
	EnvRedisAddr = "DAYPASS_REDIS_ADDR"

	EnvJWTSecret              = "DAYPASS_JWT_SECRET"
	EnvJWTIssuer              = "DAYPASS_JWT_ISSUER"
	EnvJWTExpMins             = "DAYPASS_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "DAYPASS_REFRESH_TOKEN_TTL_MINUTES"

	EnvAllowSignUp = "DAYPASS_FEATURE_ALLOW_SIGN_UP"
	EnvAutoMigrate = "DAYPASS_AUTO_MIGRATE"

	EnvCORSOrigins   = "DAYPASS_CORS_ALLOWED_ORIGINS"
	EnvMetricsEnable = "DAYPASS_METRICS_ENABLED"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
