package sqlite

import (
	"context"
	"fmt"

	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/progress"
	"github.com/vytor/deckflash/internal/repository"
)

type preferencesRepository struct {
	kv repository.KVRepository
}

// NewPreferencesRepository stores preferences as JSON under repository.KeyPreferences.
func NewPreferencesRepository(kv repository.KVRepository) repository.PreferencesRepository {
	return &preferencesRepository{kv: kv}
}

func (r *preferencesRepository) Load(ctx context.Context) (*models.Preferences, error) {
	var prefs models.Preferences
	ok, err := loadJSON(ctx, r.kv, repository.KeyPreferences, &prefs)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("prefs_repo").Error("failed to load preferences: %v", err)
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &prefs, nil
}

func (r *preferencesRepository) Save(ctx context.Context, prefs models.Preferences) error {
	if err := saveJSON(ctx, r.kv, repository.KeyPreferences, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

type progressRepository struct {
	kv    repository.KVRepository
	limit int
}

// NewProgressRepository stores progress as JSON under repository.KeyProgress.
// Loaded records keep at most limit answers.
func NewProgressRepository(kv repository.KVRepository, limit int) repository.ProgressRepository {
	return &progressRepository{kv: kv, limit: limit}
}

func (r *progressRepository) Load(ctx context.Context) (*progress.Progress, error) {
	p := progress.New(r.limit)
	ok, err := loadJSON(ctx, r.kv, repository.KeyProgress, p)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("progress_repo").Error("failed to load progress: %v", err)
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if !ok {
		return nil, nil
	}
	if p.Totals == nil {
		p.Totals = map[string]progress.Tally{}
	}
	p.SetLimit(r.limit)
	return p, nil
}

func (r *progressRepository) Save(ctx context.Context, p *progress.Progress) error {
	if err := saveJSON(ctx, r.kv, repository.KeyProgress, p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
