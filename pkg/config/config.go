package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DAYPASS_APP_ENV" required:"true"`
	Port         string `envconfig:"DAYPASS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DAYPASS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DAYPASS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	AllowedOrigins  []string      `envconfig:"DAYPASS_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	ReadTimeout     time.Duration `envconfig:"DAYPASS_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"DAYPASS_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"DAYPASS_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	DSN string `envconfig:"DAYPASS_DB_DSN"`

	LegacyHost     string `envconfig:"DAYPASS_DB_HOST"`
	LegacyPort     int    `envconfig:"DAYPASS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DAYPASS_DB_USER"`
	LegacyPassword string `envconfig:"DAYPASS_DB_PASSWORD"`
	LegacyName     string `envconfig:"DAYPASS_DB_NAME"`
	LegacySSLMode  string `envconfig:"DAYPASS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DAYPASS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DAYPASS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DAYPASS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DAYPASS_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"DAYPASS_DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DAYPASS_REDIS_URL"`
	Address      string        `envconfig:"DAYPASS_REDIS_ADDR"`
	Password     string        `envconfig:"DAYPASS_REDIS_PASSWORD"`
	DB           int           `envconfig:"DAYPASS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DAYPASS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DAYPASS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DAYPASS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DAYPASS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DAYPASS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"DAYPASS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"DAYPASS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"DAYPASS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"DAYPASS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// AccessTokenTTL returns the lifetime of minted access tokens.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DAYPASS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DAYPASS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DAYPASS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DAYPASS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DAYPASS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	SignInWindow     time.Duration `envconfig:"DAYPASS_AUTH_RATE_LIMIT_SIGN_IN_WINDOW" default:"1m"`
	SignInEmailLimit int           `envconfig:"DAYPASS_AUTH_RATE_LIMIT_SIGN_IN_EMAIL_LIMIT" default:"5"`
	SignInIPLimit    int           `envconfig:"DAYPASS_AUTH_RATE_LIMIT_SIGN_IN_IP_LIMIT" default:"20"`
	SignUpWindow     time.Duration `envconfig:"DAYPASS_AUTH_RATE_LIMIT_SIGN_UP_WINDOW" default:"5m"`
	SignUpEmailLimit int           `envconfig:"DAYPASS_AUTH_RATE_LIMIT_SIGN_UP_EMAIL_LIMIT" default:"3"`
	SignUpIPLimit    int           `envconfig:"DAYPASS_AUTH_RATE_LIMIT_SIGN_UP_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DAYPASS_AUTO_MIGRATE" default:"false"`
	AllowSignUp bool `envconfig:"DAYPASS_FEATURE_ALLOW_SIGN_UP" default:"false"`
}

type MetricsConfig struct {
	Enabled   bool   `envconfig:"DAYPASS_METRICS_ENABLED" default:"true"`
	Namespace string `envconfig:"DAYPASS_METRICS_NAMESPACE" default:"daypass"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
