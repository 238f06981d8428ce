package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig          `envPrefix:"APP_"`
	Database     DatabaseConfig     `envPrefix:"DB_"`
	JWT          JWTConfig          `envPrefix:"JWT_"`
	Log          LogConfig          `envPrefix:"LOG_"`
	Redis        RedisConfig        `envPrefix:"REDIS_"`
	RabbitMQ     RabbitMQConfig     `envPrefix:"RABBITMQ_"`
	Cron         CronConfig         `envPrefix:"CRON_"`
	InitialAdmin InitialAdminConfig `envPrefix:"INITIAL_ADMIN_"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name            string        `env:"NAME" envDefault:"employee-attendance-backend"`
	Version         string        `env:"VERSION" envDefault:"v1.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	Env             string        `env:"ENV" envDefault:"development"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"employee_attendance"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"MAX_CONNS" envDefault:"25"`
	MinConns int32  `env:"MIN_CONNS" envDefault:"5"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `env:"SECRET_KEY"`
	AccessExpiration time.Duration `env:"ACCESS_EXPIRATION_TIME" envDefault:"1h"`
}

type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"30"`
	Console    bool   `env:"CONSOLE" envDefault:"true"`
}

// RedisConfig enables the shared month lock. An empty Addr keeps locks in process.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	LockTTL  time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}

// RabbitMQConfig enables event publishing. An empty URL drops events.
type RabbitMQConfig struct {
	URL            string        `env:"URL"`
	Exchange       string        `env:"EXCHANGE" envDefault:"attendance.events"`
	PublishTimeout time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"5s"`
}

type CronConfig struct {
	// SnapshotRefreshInterval of zero disables the job
	SnapshotRefreshInterval time.Duration `env:"SNAPSHOT_REFRESH_INTERVAL" envDefault:"1h"`
}

// InitialAdminConfig describes the administrator created at startup. It is skipped when Email is empty.
type InitialAdminConfig struct {
	Email      string `env:"EMAIL"`
	Password   string `env:"PASSWORD"`
	FirstName  string `env:"FIRST_NAME" envDefault:"System"`
	LastName   string `env:"LAST_NAME" envDefault:"Admin"`
	Department string `env:"DEPARTMENT" envDefault:"Administration"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.ParseWithOptions(config, opts); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Redis.Addr != "" && c.Redis.LockTTL <= 0 {
		return fmt.Errorf("REDIS_LOCK_TTL must be positive")
	}
	if c.Cron.SnapshotRefreshInterval < 0 {
		return fmt.Errorf("CRON_SNAPSHOT_REFRESH_INTERVAL cannot be negative")
	}
	if c.InitialAdmin.Email != "" && len(c.InitialAdmin.Password) < 8 {
		return fmt.Errorf("INITIAL_ADMIN_PASSWORD must be at least 8 characters")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}
