package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/deckflash/internal/db"
	"github.com/vytor/deckflash/internal/logger"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
// Each call gets its own database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	logger.SetDefault(logger.Discard())

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
