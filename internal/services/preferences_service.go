package services

import (
	"context"
	"fmt"

	"github.com/vytor/deckflash/internal/analytics"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/repository"
	"github.com/vytor/deckflash/internal/training"
)

// PreferencesService handles the user's training options
type PreferencesService interface {
	Get(ctx context.Context) (models.Preferences, error)
	Update(ctx context.Context, prefs models.Preferences) (models.Preferences, error)
}

type preferencesService struct {
	repo         repository.PreferencesRepository
	registry     *deck.Registry
	defaultStack string
	tracker      analytics.EventTracker
}

// NewPreferencesService creates a new PreferencesService. defaultStack is used
// when nothing is stored or the stored stack no longer exists.
func NewPreferencesService(repo repository.PreferencesRepository, registry *deck.Registry, defaultStack string, tracker analytics.EventTracker) PreferencesService {
	return &preferencesService{
		repo:         repo,
		registry:     registry,
		defaultStack: defaultStack,
		tracker:      orNoop(tracker),
	}
}

func orNoop(t analytics.EventTracker) analytics.EventTracker {
	if t == nil {
		return analytics.Noop{}
	}
	return t
}

func (s *preferencesService) Get(ctx context.Context) (models.Preferences, error) {
	log := logger.FromContext(ctx).WithPrefix("preferences")
	log.Debug("loading preferences")

	prefs, err := s.repo.Load(ctx)
	if err != nil {
		log.Error("failed to load preferences: %v", err)
		return models.Preferences{}, errors.NewInternalError(err)
	}
	if prefs == nil {
		log.Debug("no stored preferences, using defaults")
		return models.DefaultPreferences(s.defaultStack), nil
	}
	if !s.registry.Has(prefs.Stack) {
		log.Warn("stored stack %q is not registered, falling back to %s", prefs.Stack, s.defaultStack)
		prefs.Stack = s.defaultStack
	}
	return *prefs, nil
}

func (s *preferencesService) Update(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	log := logger.FromContext(ctx).WithPrefix("preferences")
	log.Debug("updating preferences: stack=%s, mode=%s, choices=%d, timer=%d",
		prefs.Stack, prefs.Mode, prefs.ChoicesCount, prefs.TimerSeconds)

	normalized, appErr := s.validate(prefs)
	if appErr != nil {
		return models.Preferences{}, appErr
	}
	if err := s.repo.Save(ctx, normalized); err != nil {
		log.Error("failed to save preferences: %v", err)
		return models.Preferences{}, errors.NewInternalError(err)
	}

	s.tracker.Track(ctx, models.EventPreferencesUpdated, map[string]any{
		"stack":   normalized.Stack,
		"mode":    normalized.Mode,
		"choices": normalized.ChoicesCount,
		"timer":   normalized.TimerSeconds,
	})
	return normalized, nil
}

func (s *preferencesService) validate(prefs models.Preferences) (models.Preferences, *errors.AppError) {
	stack, err := s.registry.Get(prefs.Stack)
	if err != nil {
		return prefs, errors.WrapValidationError("stack", err)
	}
	prefs.Stack = stack.Name

	mode, err := training.ParseMode(prefs.Mode)
	if err != nil {
		return prefs, errors.WrapValidationError("mode", err)
	}
	prefs.Mode = string(mode)

	if prefs.ChoicesCount < models.MinChoicesCount || prefs.ChoicesCount > models.MaxChoicesCount {
		return prefs, errors.NewValidationError("choices_count",
			fmt.Sprintf("must be between %d and %d", models.MinChoicesCount, models.MaxChoicesCount))
	}
	if prefs.TimerSeconds < 0 || prefs.TimerSeconds > models.MaxTimerSeconds {
		return prefs, errors.NewValidationError("timer_seconds",
			fmt.Sprintf("must be between 0 and %d", models.MaxTimerSeconds))
	}
	return prefs, nil
}
