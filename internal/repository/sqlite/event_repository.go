package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/deckflash/internal/logger"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/repository"
)

const defaultEventLimit = 100

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository implementation
func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func insertEventQuery(e models.Event) (string, []any, error) {
	props := e.Properties
	if props == nil {
		props = map[string]any{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return "", nil, err
	}
	return sqlBuilder.
		Insert("analytics_events").
		Columns("id", "name", "properties", "created_at").
		Values(e.ID.String(), e.Name, string(raw), e.CreatedAt.UTC()).
		ToSql()
}

func (r *eventRepository) Insert(ctx context.Context, e models.Event) error {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("inserting event: id=%s, name=%s", e.ID, e.Name)

	query, args, err := insertEventQuery(e)
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert event: %v", err)
		return err
	}
	return nil
}

func (r *eventRepository) InsertBatch(ctx context.Context, events []models.Event) error {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("inserting %d events", len(events))
	if len(events) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, e := range events {
			query, args, err := insertEventQuery(e)
			if err != nil {
				log.Error("failed to build query: %v", err)
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to insert event %s: %v", e.ID, err)
				return err
			}
		}
		return nil
	})
}

func (r *eventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("listing events: name=%s, limit=%d", filter.Name, filter.Limit)

	query := sqlBuilder.Select("id", "name", "properties", "created_at").From("analytics_events")
	if filter.Name != "" {
		query = query.Where(squirrel.Eq{"name": filter.Name})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": filter.Since.UTC()})
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}
	query = query.OrderBy("created_at DESC", "id").Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			e     models.Event
			id    string
			props string
		)
		if err := rows.Scan(&id, &e.Name, &props, &e.CreatedAt); err != nil {
			log.Error("failed to scan event row: %v", err)
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			log.Error("invalid event id %q: %v", id, err)
			return nil, err
		}
		if err := json.Unmarshal([]byte(props), &e.Properties); err != nil {
			log.Error("invalid event properties for %s: %v", id, err)
			return nil, err
		}
		events = append(events, e)
	}
	log.Debug("found %d events", len(events))
	return events, rows.Err()
}

func (r *eventRepository) Count(ctx context.Context, name string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")

	query := sqlBuilder.Select("COUNT(*)").From("analytics_events")
	if name != "" {
		query = query.Where(squirrel.Eq{"name": name})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		log.Error("failed to count events: %v", err)
		return 0, err
	}
	return n, nil
}
