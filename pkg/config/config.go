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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Reporting     ReportingConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"STOCKPILOT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKPILOT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKPILOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKPILOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKPILOT_DB_DSN"`
	Driver string `envconfig:"STOCKPILOT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKPILOT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKPILOT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKPILOT_DB_USER"`
	LegacyPassword string `envconfig:"STOCKPILOT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKPILOT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKPILOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKPILOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKPILOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKPILOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKPILOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ConnectAttempts int           `envconfig:"STOCKPILOT_DB_CONNECT_ATTEMPTS" default:"5"`
	ConnectBackoff  time.Duration `envconfig:"STOCKPILOT_DB_CONNECT_BACKOFF" default:"500ms"`
}

// IsSQLite reports whether the configured driver targets SQLite (used by local
// dev and the test suite).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKPILOT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOCKPILOT_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKPILOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKPILOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKPILOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKPILOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKPILOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKPILOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKPILOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STOCKPILOT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOCKPILOT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOCKPILOT_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOCKPILOT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOCKPILOT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOCKPILOT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOCKPILOT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOCKPILOT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow          time.Duration `envconfig:"STOCKPILOT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginAccountLimit    int           `envconfig:"STOCKPILOT_AUTH_RATE_LIMIT_LOGIN_ACCOUNT_LIMIT" default:"5"`
	LoginIPLimit         int           `envconfig:"STOCKPILOT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow       time.Duration `envconfig:"STOCKPILOT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterAccountLimit int           `envconfig:"STOCKPILOT_AUTH_RATE_LIMIT_REGISTER_ACCOUNT_LIMIT" default:"3"`
	RegisterIPLimit      int           `envconfig:"STOCKPILOT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type ReportingConfig struct {
	WindowDays int `envconfig:"STOCKPILOT_REPORT_WINDOW_DAYS" default:"7"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKPILOT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		// SQLite callers must pass an explicit DSN (file path or :memory:).
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
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
