package services

import (
	"context"
	"fmt"

	"github.com/vytor/deckflash/internal/analytics"
	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/repository"
)

const (
	MaxEventBatch     = 100
	MaxEventListLimit = 1000
)

// EventInput is a client-reported analytics event.
type EventInput struct {
	Name       string
	Properties map[string]any
}

// EventService records and lists analytics events
type EventService interface {
	Record(ctx context.Context, inputs []EventInput) (int, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

type eventService struct {
	repo    repository.EventRepository
	tracker *analytics.Tracker
}

// NewEventService creates a new EventService. Recorded events go through
// tracker, so they are persisted asynchronously.
func NewEventService(repo repository.EventRepository, tracker *analytics.Tracker) EventService {
	return &eventService{repo: repo, tracker: tracker}
}

// Record queues inputs as one batch and returns how many were accepted:
// all of them, or none when the queue is full.
func (s *eventService) Record(ctx context.Context, inputs []EventInput) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("events")
	log.Debug("recording %d client events", len(inputs))

	if len(inputs) == 0 {
		return 0, errors.NewValidationError("events", "cannot be empty")
	}
	if len(inputs) > MaxEventBatch {
		return 0, errors.NewValidationError("events", fmt.Sprintf("at most %d per request", MaxEventBatch))
	}

	events := make([]models.Event, 0, len(inputs))
	for i, in := range inputs {
		if in.Name == "" {
			return 0, errors.NewValidationError(fmt.Sprintf("events[%d].name", i), "cannot be empty")
		}
		events = append(events, s.tracker.NewEvent(in.Name, in.Properties))
	}

	if !s.tracker.TrackAll(ctx, events) {
		return 0, nil
	}
	return len(events), nil
}

// List returns events newest first. A zero limit uses the repository default.
func (s *eventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	log := logger.FromContext(ctx).WithPrefix("events")
	if filter.Limit < 0 || filter.Limit > MaxEventListLimit {
		return nil, errors.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", MaxEventListLimit))
	}
	log.Debug("listing events: name=%s, limit=%d", filter.Name, filter.Limit)

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list events: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}
