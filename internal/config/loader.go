package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// envAliases keeps the short environment names used by the deployment
// scripts working alongside the derived SECTION_KEY names.
var envAliases = map[string][]string{
	"http.port":                  {"HTTP_PORT", "PORT"},
	"api.base_url":               {"API_BASE_URL"},
	"api.timeout":                {"API_TIMEOUT"},
	"board.message_timeout":      {"BOARD_MESSAGE_TIMEOUT"},
	"board.session_idle_timeout": {"BOARD_SESSION_IDLE_TIMEOUT"},
	"board.max_sessions":         {"BOARD_MAX_SESSIONS"},
	"board.public_url":           {"BOARD_PUBLIC_URL"},
	"database.driver":            {"DATABASE_DRIVER", "DB_DRIVER"},
	"database.postgres.host":     {"DATABASE_POSTGRES_HOST", "DB_HOST"},
	"database.postgres.port":     {"DATABASE_POSTGRES_PORT", "DB_PORT"},
	"database.postgres.user":     {"DATABASE_POSTGRES_USER", "DB_USER"},
	"database.postgres.password": {"DATABASE_POSTGRES_PASSWORD", "DB_PASSWORD"},
	"database.postgres.dbname":   {"DATABASE_POSTGRES_DBNAME", "DB_NAME"},
	"database.postgres.sslmode":  {"DATABASE_POSTGRES_SSLMODE", "DB_SSLMODE"},
	"logging.level":              {"LOGGING_LEVEL", "LOG_LEVEL"},
	"logging.format":             {"LOGGING_FORMAT", "LOG_FORMAT"},
}

// Load reads .env, an optional config.yaml and the environment, in that order
// of increasing precedence. name is the application name and picks the
// default port.
func Load(name string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return load(v, name)
}

func load(v *viper.Viper, name string) (*Config, error) {
	setDefaults(v, name)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envAliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, name string) {
	port := "8080"
	if name == "activity-board" {
		port = "8081"
	}

	v.SetDefault("app.name", name)
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", port)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("board.message_timeout", 5*time.Second)
	v.SetDefault("board.session_idle_timeout", 30*time.Minute)
	v.SetDefault("board.max_sessions", 1000)
	v.SetDefault("board.sweep_interval", time.Minute)
	v.SetDefault("board.public_url", "")

	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", "5432")
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.password", "postgres")
	v.SetDefault("database.postgres.dbname", "activities")
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.postgres.max_conns", 20)
	v.SetDefault("database.postgres.min_conns", 2)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.HTTP.Port == "" {
		return errors.New("http.port is required")
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Board.MessageTimeout <= 0 {
		return errors.New("board.message_timeout must be positive")
	}
	if c.Board.MaxSessions < 0 {
		return errors.New("board.max_sessions must not be negative")
	}
	switch c.Database.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	return nil
}
