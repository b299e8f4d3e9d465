package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT, default=5000"`
	Env       string `env:"ENV, default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	APIPrefix string `env:"API_PREFIX, default=/api"`

	HTTP  HTTPConfig
	Auth  AuthConfig
	Admin AdminConfig
	Mongo MongoConfig
	Redis RedisConfig

	Movements MovementsConfig
}

type HTTPConfig struct {
	AllowOrigins    []string      `env:"CORS_ALLOW_ORIGINS, delimiter=;"`
	BodyLimit       string        `env:"HTTP_BODY_LIMIT, default=1M"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT, default=10s"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, required"`
	JWTExpire     time.Duration `env:"JWT_EXPIRE, default=24h"`
	RateLimit     float64       `env:"AUTH_RATE_LIMIT, default=5"`
	RateBurst     int           `env:"AUTH_RATE_BURST, default=10"`
	MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LockoutWindow time.Duration `env:"LOGIN_LOCKOUT, default=15m"`
}

// AdminConfig seeds the first Admin account at startup. Leaving the email
// or password empty disables the bootstrap.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Administrator"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB, default=sweetshop"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig backs the login lockout. An empty address disables it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MovementsConfig sizes the asynchronous stock history writer.
type MovementsConfig struct {
	Workers int `env:"MOVEMENT_WORKERS, default=4"`
	Buffer  int `env:"MOVEMENT_BUFFER, default=256"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from the given lookuper. Used by tests.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Auth.JWTSecret) < 16 && !c.IsDevelopment() {
		return errors.New("JWT_SECRET must be at least 16 characters outside development")
	}
	if c.Auth.JWTExpire <= 0 {
		return errors.New("JWT_EXPIRE must be positive")
	}
	if c.Movements.Workers <= 0 || c.Movements.Buffer <= 0 {
		return errors.New("MOVEMENT_WORKERS and MOVEMENT_BUFFER must be positive")
	}
	return nil
}
