package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHIFTROSTER_DB_DSN"
	EnvDBHost = "SHIFTROSTER_DB_HOST"
	EnvDBUser = "SHIFTROSTER_DB_USER"
	EnvDBName = "SHIFTROSTER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"SHIFTROSTER_APP_ENV" required:"true"`
	Port         string `envconfig:"SHIFTROSTER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHIFTROSTER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHIFTROSTER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHIFTROSTER_DB_DSN"`
	Driver string `envconfig:"SHIFTROSTER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHIFTROSTER_DB_HOST"`
	LegacyPort     int    `envconfig:"SHIFTROSTER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHIFTROSTER_DB_USER"`
	LegacyPassword string `envconfig:"SHIFTROSTER_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHIFTROSTER_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHIFTROSTER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHIFTROSTER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHIFTROSTER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHIFTROSTER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHIFTROSTER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHIFTROSTER_REDIS_URL"`
	Address      string        `envconfig:"SHIFTROSTER_REDIS_ADDR"`
	Password     string        `envconfig:"SHIFTROSTER_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHIFTROSTER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHIFTROSTER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHIFTROSTER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHIFTROSTER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHIFTROSTER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHIFTROSTER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SHIFTROSTER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SHIFTROSTER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SHIFTROSTER_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token TTL configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SHIFTROSTER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SHIFTROSTER_AUTO_MIGRATE" default:"false"`
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
