package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/deckflash/internal/analytics"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/progress"
	"github.com/vytor/deckflash/internal/training"
)

// Answer is a submitted response to a round. The client echoes the round's
// stack, mode and target so no round state is kept on the server.
type Answer struct {
	Stack          string
	Mode           string
	TargetPosition int
	AnswerPosition int
	ElapsedSeconds float64
}

type AnswerResult struct {
	Correct  bool                `json:"correct"`
	Expected deck.PositionedCard `json:"expected"`
	Answered deck.PositionedCard `json:"answered"`
	Tally    progress.Tally      `json:"tally"`
}

// TrainingService runs flashcard rounds and shuffle practice
type TrainingService interface {
	NextRound(ctx context.Context, stackName, mode string, choices int) (training.Round, error)
	SubmitAnswer(ctx context.Context, answer Answer) (*AnswerResult, error)
	ShufflePractice(ctx context.Context, stackName string) ([]deck.PositionedCard, error)
}

type trainingService struct {
	registry *deck.Registry
	prefs    PreferencesService
	store    *ProgressStore
	tracker  analytics.EventTracker
	rng      training.RNG
	now      func() time.Time
}

// NewTrainingService creates a new TrainingService. rng must be safe for
// concurrent use.
func NewTrainingService(registry *deck.Registry, prefs PreferencesService, store *ProgressStore, tracker analytics.EventTracker, rng training.RNG) TrainingService {
	if rng == nil {
		rng = training.SystemRNG()
	}
	return &trainingService{
		registry: registry,
		prefs:    prefs,
		store:    store,
		tracker:  orNoop(tracker),
		rng:      rng,
		now:      time.Now,
	}
}

func (s *trainingService) stack(name string) (deck.Stack, error) {
	stack, err := s.registry.Get(name)
	if err != nil {
		return deck.Stack{}, errors.NewNotFoundError("stack", name)
	}
	return stack, nil
}

func (s *trainingService) NextRound(ctx context.Context, stackName, mode string, choices int) (training.Round, error) {
	log := logger.FromContext(ctx).WithPrefix("training")

	if stackName == "" || mode == "" || choices == 0 {
		prefs, err := s.prefs.Get(ctx)
		if err != nil {
			return training.Round{}, err
		}
		if stackName == "" {
			stackName = prefs.Stack
		}
		if mode == "" {
			mode = prefs.Mode
		}
		if choices == 0 {
			choices = prefs.ChoicesCount
		}
	}
	log.Debug("next round: stack=%s, mode=%s, choices=%d", stackName, mode, choices)

	stack, err := s.stack(stackName)
	if err != nil {
		return training.Round{}, err
	}
	m, err := training.ParseMode(mode)
	if err != nil {
		return training.Round{}, errors.WrapValidationError("mode", err)
	}
	if choices < models.MinChoicesCount || choices > models.MaxChoicesCount {
		return training.Round{}, errors.NewValidationError("choices",
			fmt.Sprintf("must be between %d and %d", models.MinChoicesCount, models.MaxChoicesCount))
	}

	round, err := training.NewRound(stack, m, choices, s.rng)
	if err != nil {
		log.Error("failed to build round: %v", err)
		return training.Round{}, errors.NewInternalError(err)
	}

	s.tracker.Track(ctx, models.EventRoundStarted, map[string]any{
		"stack":   stack.Name,
		"mode":    string(m),
		"choices": choices,
	})
	return round, nil
}

func (s *trainingService) SubmitAnswer(ctx context.Context, answer Answer) (*AnswerResult, error) {
	log := logger.FromContext(ctx).WithPrefix("training")
	log.Debug("submitting answer: stack=%s, mode=%s, target=%d, answer=%d",
		answer.Stack, answer.Mode, answer.TargetPosition, answer.AnswerPosition)

	stack, err := s.stack(answer.Stack)
	if err != nil {
		return nil, err
	}
	mode, err := training.ParseMode(answer.Mode)
	if err != nil {
		return nil, errors.WrapValidationError("mode", err)
	}
	expected, err := stack.Positioned(answer.TargetPosition)
	if err != nil {
		return nil, errors.WrapValidationError("target_position", err)
	}
	answered, err := stack.Positioned(answer.AnswerPosition)
	if err != nil {
		return nil, errors.WrapValidationError("answer_position", err)
	}
	if answer.ElapsedSeconds < 0 {
		return nil, errors.NewValidationError("elapsed_seconds", "cannot be negative")
	}

	record := progress.AnswerRecord{
		Mode:           string(mode),
		Stack:          stack.Name,
		TargetPosition: expected.Position,
		AnswerPosition: answered.Position,
		Correct:        expected.Position == answered.Position,
		ElapsedSeconds: answer.ElapsedSeconds,
		AnsweredAt:     s.now().UTC(),
	}

	var tally progress.Tally
	err = s.store.Update(ctx, func(p *progress.Progress) error {
		tally = p.Record(record)
		return nil
	})
	if err != nil {
		log.Error("failed to record answer: %v", err)
		return nil, errors.NewInternalError(err)
	}

	s.tracker.Track(ctx, models.EventAnswerSubmitted, map[string]any{
		"stack":   record.Stack,
		"mode":    record.Mode,
		"correct": record.Correct,
		"elapsed": record.ElapsedSeconds,
	})

	return &AnswerResult{
		Correct:  record.Correct,
		Expected: expected,
		Answered: answered,
		Tally:    tally,
	}, nil
}

func (s *trainingService) ShufflePractice(ctx context.Context, stackName string) ([]deck.PositionedCard, error) {
	log := logger.FromContext(ctx).WithPrefix("training")

	if stackName == "" {
		prefs, err := s.prefs.Get(ctx)
		if err != nil {
			return nil, err
		}
		stackName = prefs.Stack
	}
	log.Debug("shuffle practice: stack=%s", stackName)

	stack, err := s.stack(stackName)
	if err != nil {
		return nil, err
	}
	cards := training.ShuffleDeck(stack, s.rng)

	s.tracker.Track(ctx, models.EventShuffleStarted, map[string]any{"stack": stack.Name})
	return cards, nil
}
