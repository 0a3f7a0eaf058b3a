package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/deckflash/internal/logger"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	LogColors            bool
	AnalyticsWorkerCount int
	AnalyticsQueueSize   int
	HistoryLimit         int
	DefaultStack         string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:deckflash.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		LogColors:            envBoolOr("LOG_COLORS", true),
		AnalyticsWorkerCount: envIntOr("ANALYTICS_WORKER_COUNT", 1),
		AnalyticsQueueSize:   envIntOr("ANALYTICS_QUEUE_SIZE", 128),
		HistoryLimit:         envIntOr("HISTORY_LIMIT", 500),
		DefaultStack:         envOr("DEFAULT_STACK", "mnemonica"),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.AnalyticsWorkerCount < 1 || c.AnalyticsWorkerCount > 16 {
		errs = append(errs, fmt.Sprintf("ANALYTICS_WORKER_COUNT must be between 1 and 16, got %d", c.AnalyticsWorkerCount))
	}
	if c.AnalyticsQueueSize < 1 {
		errs = append(errs, fmt.Sprintf("ANALYTICS_QUEUE_SIZE must be positive, got %d", c.AnalyticsQueueSize))
	}
	if c.HistoryLimit < 1 || c.HistoryLimit > 10000 {
		errs = append(errs, fmt.Sprintf("HISTORY_LIMIT must be between 1 and 10000, got %d", c.HistoryLimit))
	}
	if strings.TrimSpace(c.DefaultStack) == "" {
		errs = append(errs, "DEFAULT_STACK cannot be empty")
	}
	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
