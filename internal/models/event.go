package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is an analytics event recorded by the tracker.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

type EventFilter struct {
	Name  string
	Since *time.Time
	Limit int
}

// Well-known event names.
const (
	EventRoundStarted       = "round_started"
	EventAnswerSubmitted    = "answer_submitted"
	EventShuffleStarted     = "shuffle_started"
	EventPreferencesUpdated = "preferences_updated"
	EventStatsReset         = "stats_reset"
)
