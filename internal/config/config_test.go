package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deckflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		LogColors:            false,
		AnalyticsWorkerCount: 1,
		AnalyticsQueueSize:   128,
		HistoryLimit:         500,
		DefaultStack:         "mnemonica",
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = " "

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "log level",
			mutate: func(c *config.Config) { c.LogLevel = "TRACE" },
			want:   "LOG_LEVEL",
		},
		{
			name:   "no workers",
			mutate: func(c *config.Config) { c.AnalyticsWorkerCount = 0 },
			want:   "ANALYTICS_WORKER_COUNT",
		},
		{
			name:   "too many workers",
			mutate: func(c *config.Config) { c.AnalyticsWorkerCount = 17 },
			want:   "ANALYTICS_WORKER_COUNT",
		},
		{
			name:   "queue size",
			mutate: func(c *config.Config) { c.AnalyticsQueueSize = 0 },
			want:   "ANALYTICS_QUEUE_SIZE",
		},
		{
			name:   "history limit",
			mutate: func(c *config.Config) { c.HistoryLimit = 0 },
			want:   "HISTORY_LIMIT",
		},
		{
			name:   "default stack",
			mutate: func(c *config.Config) { c.DefaultStack = "" },
			want:   "DEFAULT_STACK",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.HistoryLimit = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR")
	assert.Contains(t, err.Error(), "HISTORY_LIMIT")
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "LOG_COLORS", "ANALYTICS_WORKER_COUNT", "ANALYTICS_QUEUE_SIZE", "HISTORY_LIMIT", "DEFAULT_STACK"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:deckflash.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.LogColors)
	assert.Equal(t, 1, cfg.AnalyticsWorkerCount)
	assert.Equal(t, 128, cfg.AnalyticsQueueSize)
	assert.Equal(t, 500, cfg.HistoryLimit)
	assert.Equal(t, "mnemonica", cfg.DefaultStack)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_COLORS", "false")
	t.Setenv("HISTORY_LIMIT", "50")
	t.Setenv("ANALYTICS_QUEUE_SIZE", "not-a-number")
	t.Setenv("DEFAULT_STACK", "aronson")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.False(t, cfg.LogColors)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, 128, cfg.AnalyticsQueueSize, "invalid ints fall back to the default")
	assert.Equal(t, "aronson", cfg.DefaultStack)
}
