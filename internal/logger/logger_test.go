package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/deckflash/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithColors(false),
		logger.WithClock(fixedClock),
	)

	log.WithPrefix("deck").WithFields(map[string]any{"stack": "mnemonica", "position": 27}).Info("looked up %s", "2C")

	line := buf.String()
	assert.Contains(t, line, "2026-01-02 03:04:05.000 INFO  [deck] [logger_test.go:")
	assert.Contains(t, line, "looked up 2C position=27 stack=mnemonica\n")
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  ")
	assert.Contains(t, out, "ERROR ")
}

func TestLogger_ChildDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = parent.WithError(errors.New("boom"))

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "error=")
}

func TestLogger_Colors(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(true))
	log.Error("red")
	assert.Contains(t, buf.String(), "\033[31mERROR\033[0m")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" ERROR "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("verbose"))

	_, ok := logger.LookupLevel("verbose")
	assert.False(t, ok)
}

func TestContext(t *testing.T) {
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	l := logger.Discard()
	ctx := logger.NewContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
}
