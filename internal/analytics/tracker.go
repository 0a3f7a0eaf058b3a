// Package analytics records usage events off the request path. Events are
// persisted by jobs on a bounded worker pool; a full queue drops events
// rather than slowing the caller.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/repository"
	"github.com/vytor/deckflash/internal/worker"
)

// EventTracker is what services depend on.
type EventTracker interface {
	Track(ctx context.Context, name string, props map[string]any)
}

// Submitter is the part of worker.Pool the tracker needs.
type Submitter interface {
	TrySubmit(job worker.Job) bool
}

type Tracker struct {
	pool Submitter
	repo repository.EventRepository
	now  func() time.Time
}

func NewTracker(pool Submitter, repo repository.EventRepository) *Tracker {
	return &Tracker{pool: pool, repo: repo, now: time.Now}
}

// NewEvent builds an event with a fresh id, stamped with the current time.
func (t *Tracker) NewEvent(name string, props map[string]any) models.Event {
	now := time.Now
	if t != nil && t.now != nil {
		now = t.now
	}
	return models.Event{
		ID:         uuid.New(),
		Name:       name,
		Properties: props,
		CreatedAt:  now().UTC(),
	}
}

// Track queues a single event. It never blocks.
func (t *Tracker) Track(ctx context.Context, name string, props map[string]any) {
	if t == nil {
		return
	}
	t.TrackAll(ctx, []models.Event{t.NewEvent(name, props)})
}

// TrackAll queues events to be stored together. It reports whether the batch
// was accepted; a rejected batch is dropped.
func (t *Tracker) TrackAll(ctx context.Context, events []models.Event) bool {
	if t == nil || t.pool == nil || len(events) == 0 {
		return false
	}
	log := logger.FromContext(ctx).WithPrefix("analytics")
	job := &PersistEventsJob{Repo: t.repo, Events: events}
	if !t.pool.TrySubmit(job) {
		log.Warn("analytics queue full or stopped, dropping %d event(s) starting with %s", len(events), events[0].Name)
		return false
	}
	log.Debug("queued %d event(s)", len(events))
	return true
}

// PersistEventsJob writes a batch of events in one transaction.
type PersistEventsJob struct {
	Repo   repository.EventRepository
	Events []models.Event
}

func (j *PersistEventsJob) Name() string { return "persist_events" }

func (j *PersistEventsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if len(j.Events) == 1 {
		if err := j.Repo.Insert(ctx, j.Events[0]); err != nil {
			return fmt.Errorf("persist event %s: %w", j.Events[0].Name, err)
		}
	} else if err := j.Repo.InsertBatch(ctx, j.Events); err != nil {
		return fmt.Errorf("persist %d events: %w", len(j.Events), err)
	}
	log.Debug("persisted %d event(s)", len(j.Events))
	return nil
}

// Noop discards every event.
type Noop struct{}

func (Noop) Track(context.Context, string, map[string]any) {}
