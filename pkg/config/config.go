package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret     = "secret_jwt_key"
	defaultAdminPassword = "admin123"
)

var (
	ErrDefaultJWTSecret     = errors.New("JWT_SECRET must be set in production")
	ErrDefaultAdminPassword = errors.New("ADMIN_PASSWORD must be set in production")
)

// Config holds every runtime setting of the API. Values come from the
// process environment, optionally seeded from a .env file.
type Config struct {
	Port      string `env:"PORT,default=3000"`
	AppEnv    string `env:"APP_ENV,default=development"`
	ClientURL string `env:"CLIENT_URL,default=*"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST,default=localhost"`
	DBUser      string `env:"DB_USER,default=postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME,default=retail_inventory"`
	DBPort      string `env:"DB_PORT,default=5432"`
	DBTimeZone  string `env:"DB_TIMEZONE,default=UTC"`

	RedisURL string `env:"REDIS_URL"`

	JWTSecret string        `env:"JWT_SECRET,default=secret_jwt_key"`
	JWTExpire time.Duration `env:"JWT_EXPIRE,default=168h"`

	AdminEmail    string `env:"ADMIN_EMAIL,default=admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD,default=admin123"`
}

// Load reads .env (if present) and decodes the environment.
// It reports whether a .env file was found so callers can log it.
func Load() (*Config, bool, error) {
	foundDotEnv := godotenv.Load() == nil

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, foundDotEnv, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, foundDotEnv, err
	}
	return &cfg, foundDotEnv, nil
}

// validate refuses the built-in development secrets in production.
func (c *Config) validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.JWTSecret == defaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	if c.AdminPassword == defaultAdminPassword {
		return ErrDefaultAdminPassword
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value Postgres DSN
// built from the individual DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBTimeZone,
	)
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
