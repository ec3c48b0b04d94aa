// Package config holds the configuration shared by the board and API binaries.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	API      APIConfig      `mapstructure:"api"`
	Board    BoardConfig    `mapstructure:"board"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// HTTPConfig configures the listening server of either binary.
type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address for the configured port.
func (h HTTPConfig) Addr() string {
	return ":" + h.Port
}

// APIConfig tells the board where the activities API lives.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// BoardConfig tunes the board UI.
type BoardConfig struct {
	MessageTimeout     time.Duration `mapstructure:"message_timeout"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
	// MaxSessions caps live board sessions; the least recently used one is
	// evicted to make room. Zero means no cap.
	MaxSessions int `mapstructure:"max_sessions"`
	SweepInterval      time.Duration `mapstructure:"sweep_interval"`
	// PublicURL is where the API's root path redirects to.
	PublicURL string `mapstructure:"public_url"`
}

type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"` // memory | postgres
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// DSN builds a libpq-compatible connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
