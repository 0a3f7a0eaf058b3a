package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/repository"
	"github.com/vytor/deckflash/internal/repository/sqlite"
	"github.com/vytor/deckflash/internal/testutil"
)

type EventRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.EventRepository
	base time.Time
}

func (s *EventRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewEventRepository(s.db)
	s.base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *EventRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *EventRepositorySuite) event(name string, offset time.Duration, props map[string]any) models.Event {
	return models.Event{
		ID:         uuid.New(),
		Name:       name,
		Properties: props,
		CreatedAt:  s.base.Add(offset),
	}
}

func (s *EventRepositorySuite) TestInsertAndList() {
	ctx := context.Background()
	e := s.event(models.EventRoundStarted, 0, map[string]any{"stack": "mnemonica", "choices": 5})
	s.Require().NoError(s.repo.Insert(ctx, e))

	events, err := s.repo.List(ctx, models.EventFilter{})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Assert().Equal(e.ID, events[0].ID)
	s.Assert().Equal(models.EventRoundStarted, events[0].Name)
	s.Assert().Equal("mnemonica", events[0].Properties["stack"])
	// JSON numbers decode as float64.
	s.Assert().Equal(float64(5), events[0].Properties["choices"])
	s.Assert().True(e.CreatedAt.Equal(events[0].CreatedAt))
}

func (s *EventRepositorySuite) TestInsert_NilProperties() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, s.event(models.EventStatsReset, 0, nil)))

	events, err := s.repo.List(ctx, models.EventFilter{})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Assert().NotNil(events[0].Properties)
	s.Assert().Empty(events[0].Properties)
}

func (s *EventRepositorySuite) TestInsert_DuplicateID() {
	ctx := context.Background()
	e := s.event(models.EventRoundStarted, 0, nil)
	s.Require().NoError(s.repo.Insert(ctx, e))
	s.Assert().Error(s.repo.Insert(ctx, e))
}

func (s *EventRepositorySuite) TestInsertBatch_Atomic() {
	ctx := context.Background()
	dup := s.event(models.EventAnswerSubmitted, time.Second, nil)
	batch := []models.Event{
		s.event(models.EventRoundStarted, 0, nil),
		dup,
		dup,
	}
	s.Assert().Error(s.repo.InsertBatch(ctx, batch))

	n, err := s.repo.Count(ctx, "")
	s.Require().NoError(err)
	s.Assert().Equal(0, n, "failed batch must roll back")

	s.Require().NoError(s.repo.InsertBatch(ctx, batch[:2]))
	n, err = s.repo.Count(ctx, "")
	s.Require().NoError(err)
	s.Assert().Equal(2, n)
}

func (s *EventRepositorySuite) TestInsertBatch_Empty() {
	s.Assert().NoError(s.repo.InsertBatch(context.Background(), nil))
}

func (s *EventRepositorySuite) TestList_FiltersAndOrder() {
	ctx := context.Background()
	s.Require().NoError(s.repo.InsertBatch(ctx, []models.Event{
		s.event(models.EventRoundStarted, 0, nil),
		s.event(models.EventAnswerSubmitted, time.Minute, nil),
		s.event(models.EventRoundStarted, 2*time.Minute, nil),
		s.event(models.EventRoundStarted, 3*time.Minute, nil),
	}))

	events, err := s.repo.List(ctx, models.EventFilter{Name: models.EventRoundStarted})
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Assert().True(events[0].CreatedAt.After(events[1].CreatedAt))
	s.Assert().True(events[1].CreatedAt.After(events[2].CreatedAt))

	since := s.base.Add(90 * time.Second)
	events, err = s.repo.List(ctx, models.EventFilter{Since: &since})
	s.Require().NoError(err)
	s.Assert().Len(events, 2)

	events, err = s.repo.List(ctx, models.EventFilter{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Assert().True(s.base.Add(3 * time.Minute).Equal(events[0].CreatedAt))
}

func (s *EventRepositorySuite) TestCount() {
	ctx := context.Background()
	s.Require().NoError(s.repo.InsertBatch(ctx, []models.Event{
		s.event(models.EventRoundStarted, 0, nil),
		s.event(models.EventAnswerSubmitted, time.Second, nil),
		s.event(models.EventAnswerSubmitted, 2*time.Second, nil),
	}))

	n, err := s.repo.Count(ctx, models.EventAnswerSubmitted)
	s.Require().NoError(err)
	s.Assert().Equal(2, n)

	n, err = s.repo.Count(ctx, "unknown")
	s.Require().NoError(err)
	s.Assert().Equal(0, n)
}

func TestEventRepositorySuite(t *testing.T) {
	suite.Run(t, new(EventRepositorySuite))
}
