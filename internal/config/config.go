// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port           int           `env:"PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"postgres"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	DB       DBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Mongo    MongoConfig
	JWT      JWTConfig
}

type DBConfig struct {
	User     string `env:"DB_USER" envDefault:"napkin"`
	Password string `env:"DB_PASSWORD" envDefault:"secret123"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME" envDefault:"napkin_dispenser"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// URL builds the pgx connection string.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type RedisConfig struct {
	Enabled bool   `env:"REDIS_ENABLED" envDefault:"true"`
	Host    string `env:"REDIS_HOST" envDefault:"localhost"`
	Port    int    `env:"REDIS_PORT" envDefault:"6379"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RabbitMQConfig struct {
	Enabled  bool   `env:"RABBITMQ_ENABLED" envDefault:"true"`
	User     string `env:"RABBITMQ_USER" envDefault:"guest"`
	Password string `env:"RABBITMQ_PASS" envDefault:"guest"`
	Host     string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	Port     int    `env:"RABBITMQ_PORT" envDefault:"5672"`
}

func (c RabbitMQConfig) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/",
	}
	return u.String()
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	User     string `env:"MONGO_USER"`
	Password string `env:"MONGO_PASS"`
	Host     string `env:"MONGO_HOST" envDefault:"localhost"`
	Port     int    `env:"MONGO_PORT" envDefault:"27017"`
	Database string `env:"MONGO_DB" envDefault:"napkin_dispenser_audit"`
}

// ConnectionURI prefers MONGO_URI and otherwise assembles one from parts.
func (c MongoConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{Scheme: "mongodb", Host: fmt.Sprintf("%s:%d", c.Host, c.Port)}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// Containers get real variables; a missing .env is expected there.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using system environment")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.StorageDriver != StoragePostgres && c.StorageDriver != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, c.StorageDriver))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.Expiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}
