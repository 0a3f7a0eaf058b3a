package repository

import (
	"context"

	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/progress"
)

// Fixed keys in the key-value store.
const (
	KeyPreferences = "preferences"
	KeyProgress    = "progress"
)

// KVRepository is the local key-value store. Writes replace the whole value;
// the last write wins.
type KVRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// PreferencesRepository reads and writes the preferences record wholesale.
// Load returns nil when nothing is stored.
type PreferencesRepository interface {
	Load(ctx context.Context) (*models.Preferences, error)
	Save(ctx context.Context, prefs models.Preferences) error
}

// ProgressRepository reads and writes the progress record wholesale.
// Load returns nil when nothing is stored.
type ProgressRepository interface {
	Load(ctx context.Context) (*progress.Progress, error)
	Save(ctx context.Context, p *progress.Progress) error
}

// EventRepository handles analytics event data access
type EventRepository interface {
	Insert(ctx context.Context, event models.Event) error
	InsertBatch(ctx context.Context, events []models.Event) error
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Count(ctx context.Context, name string) (int, error)
}
