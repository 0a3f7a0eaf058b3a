package services

import (
	"context"
	"fmt"

	"github.com/vytor/deckflash/internal/analytics"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/progress"
	"github.com/vytor/deckflash/internal/training"
)

const defaultHistoryLimit = 50

// StatsService handles statistics-related business logic
type StatsService interface {
	Summary(ctx context.Context) ([]progress.Summary, error)
	History(ctx context.Context, limit int) ([]progress.AnswerRecord, error)
	Reset(ctx context.Context, mode, stack string) error
}

type statsService struct {
	store    *ProgressStore
	registry *deck.Registry
	tracker  analytics.EventTracker
}

// NewStatsService creates a new StatsService
func NewStatsService(store *ProgressStore, registry *deck.Registry, tracker analytics.EventTracker) StatsService {
	return &statsService{store: store, registry: registry, tracker: orNoop(tracker)}
}

func (s *statsService) Summary(ctx context.Context) ([]progress.Summary, error) {
	log := logger.FromContext(ctx).WithPrefix("stats")
	log.Debug("building summary")

	p, err := s.store.Load(ctx)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return p.Summary(), nil
}

// History returns up to limit answers, newest first; limit <= 0 uses a default.
// limit cannot exceed the number of answers the store keeps.
func (s *statsService) History(ctx context.Context, limit int) ([]progress.AnswerRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("stats")
	if limit <= 0 {
		limit = min(defaultHistoryLimit, s.store.Limit())
	}
	if kept := s.store.Limit(); limit > kept {
		return nil, errors.NewValidationError("limit", fmt.Sprintf("must be at most %d", kept))
	}
	log.Debug("loading history: limit=%d", limit)

	p, err := s.store.Load(ctx)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return p.Recent(limit), nil
}

// Reset clears stats for mode and stack; either may be empty to match all.
func (s *statsService) Reset(ctx context.Context, mode, stack string) error {
	log := logger.FromContext(ctx).WithPrefix("stats")
	log.Info("resetting stats: mode=%q, stack=%q", mode, stack)

	if mode != "" {
		m, err := training.ParseMode(mode)
		if err != nil {
			return errors.WrapValidationError("mode", err)
		}
		mode = string(m)
	}
	if stack != "" {
		st, err := s.registry.Get(stack)
		if err != nil {
			return errors.NewNotFoundError("stack", stack)
		}
		stack = st.Name
	}

	err := s.store.Update(ctx, func(p *progress.Progress) error {
		p.Reset(mode, stack)
		return nil
	})
	if err != nil {
		log.Error("failed to reset stats: %v", err)
		return errors.NewInternalError(err)
	}

	s.tracker.Track(ctx, models.EventStatsReset, map[string]any{"mode": mode, "stack": stack})
	return nil
}
