package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration for the development server and
// the SDK defaults.
type Config struct {
	Server struct {
		Port        string `yaml:"port"`
		Mode        string `yaml:"mode"`
		StoragePath string `yaml:"storage_path"`
	} `yaml:"server"`

	Store struct {
		// Backend selects the persistence adapter: local, memory, redis or
		// postgres.
		Backend    string `yaml:"backend"`
		LocalDir   string `yaml:"local_dir"`
		LocalQuota int64  `yaml:"local_quota_bytes"`

		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`

		Postgres struct {
			Host     string `yaml:"host"`
			Port     string `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			DBName   string `yaml:"dbname"`
			SSLMode  string `yaml:"sslmode"`
			MaxConns int32  `yaml:"max_conns"`
		} `yaml:"postgres"`
	} `yaml:"store"`

	JWT struct {
		Secret                string `yaml:"secret"`
		AccessTokenExpiration string `yaml:"access_token_expiration"`
		Issuer                string `yaml:"issuer"`
	} `yaml:"jwt"`

	Polling struct {
		EventsInterval        string `yaml:"events_interval"`
		NotificationsInterval string `yaml:"notifications_interval"`
	} `yaml:"polling"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional .env file, a yaml file
// and environment variable overrides, in that order.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env file is fine; values may come from the environment.
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	config.Store.Backend = "local"
	config.Store.LocalDir = "data"
	config.Store.Redis.Addr = "localhost:6379"
	config.Store.Postgres.Host = "localhost"
	config.Store.Postgres.Port = "5432"
	config.Store.Postgres.User = "postgres"
	config.Store.Postgres.Password = "postgres"
	config.Store.Postgres.DBName = "campushub"
	config.Store.Postgres.SSLMode = "disable"
	config.Store.Postgres.MaxConns = 10

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "campushub.dev"

	config.Polling.EventsInterval = "5s"
	config.Polling.NotificationsInterval = "30s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func loadFromEnv(config *Config) {
	config.Server.Port = GetEnv("SERVER_PORT", config.Server.Port)
	config.Server.Mode = GetEnv("SERVER_MODE", config.Server.Mode)
	config.Server.StoragePath = GetEnv("STORAGE_PATH", config.Server.StoragePath)

	config.Store.Backend = GetEnv("STORE_BACKEND", config.Store.Backend)
	config.Store.LocalDir = GetEnv("STORE_LOCAL_DIR", config.Store.LocalDir)
	config.Store.Redis.Addr = GetEnv("REDIS_ADDR", config.Store.Redis.Addr)
	config.Store.Redis.Password = GetEnv("REDIS_PASSWORD", config.Store.Redis.Password)
	config.Store.Redis.DB = GetEnvAsInt("REDIS_DB", config.Store.Redis.DB)
	config.Store.Postgres.Host = GetEnv("DB_HOST", config.Store.Postgres.Host)
	config.Store.Postgres.Port = GetEnv("DB_PORT", config.Store.Postgres.Port)
	config.Store.Postgres.User = GetEnv("DB_USER", config.Store.Postgres.User)
	config.Store.Postgres.Password = GetEnv("DB_PASSWORD", config.Store.Postgres.Password)
	config.Store.Postgres.DBName = GetEnv("DB_NAME", config.Store.Postgres.DBName)
	config.Store.Postgres.SSLMode = GetEnv("DB_SSLMODE", config.Store.Postgres.SSLMode)

	config.JWT.Secret = GetEnv("JWT_SECRET", config.JWT.Secret)
	config.JWT.AccessTokenExpiration = GetEnv("JWT_ACCESS_TOKEN_EXPIRATION", config.JWT.AccessTokenExpiration)
	config.JWT.Issuer = GetEnv("JWT_ISSUER", config.JWT.Issuer)

	config.Logging.Level = GetEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = GetEnv("LOG_FORMAT", config.Logging.Format)
}

func validateConfig(config *Config) error {
	switch config.Store.Backend {
	case "local", "memory", "redis", "postgres":
	default:
		return fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.Polling.EventsInterval); err != nil {
		return fmt.Errorf("invalid events polling interval: %w", err)
	}
	if _, err := time.ParseDuration(config.Polling.NotificationsInterval); err != nil {
		return fmt.Errorf("invalid notifications polling interval: %w", err)
	}
	return nil
}

// PostgresConnString returns the postgres connection string.
func (c *Config) PostgresConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Store.Postgres.User,
		c.Store.Postgres.Password,
		c.Store.Postgres.Host,
		c.Store.Postgres.Port,
		c.Store.Postgres.DBName,
		c.Store.Postgres.SSLMode,
	)
}

// AccessTokenTTL returns the parsed access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	ttl, err := time.ParseDuration(c.JWT.AccessTokenExpiration)
	if err != nil {
		return time.Hour
	}
	return ttl
}

// EventsPollInterval returns the parsed events polling interval.
func (c *Config) EventsPollInterval() time.Duration {
	interval, err := time.ParseDuration(c.Polling.EventsInterval)
	if err != nil {
		return 5 * time.Second
	}
	return interval
}

// NotificationsPollInterval returns the parsed notifications polling
// interval.
func (c *Config) NotificationsPollInterval() time.Duration {
	interval, err := time.ParseDuration(c.Polling.NotificationsInterval)
	if err != nil {
		return 30 * time.Second
	}
	return interval
}

// GetEnv gets an environment variable or returns a default value.
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a
// default value.
func GetEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
