package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), "activity-board")
	require.NoError(t, err)

	assert.Equal(t, "activity-board", cfg.App.Name)
	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.Equal(t, ":8081", cfg.HTTP.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Board.MessageTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Board.SessionIdleTimeout)
	assert.Equal(t, 1000, cfg.Board.MaxSessions)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, int32(20), cfg.Database.Postgres.MaxConns)
}

func TestLoad_APIDefaultPort(t *testing.T) {
	cfg, err := load(viper.New(), "activities-api")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTP.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "http://api.internal:8080")
	t.Setenv("BOARD_MESSAGE_TIMEOUT", "2s")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := load(viper.New(), "activity-board")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, "http://api.internal:8080", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Board.MessageTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Postgres.Host)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_LongEnvNameWins(t *testing.T) {
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("PORT", "9000")

	cfg, err := load(viper.New(), "activity-board")
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.HTTP.Port)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := load(viper.New(), "activities-api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := PostgresConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", c.DSN())
}
