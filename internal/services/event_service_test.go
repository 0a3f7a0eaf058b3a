package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deckflash/internal/analytics"
	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/services"
	"github.com/vytor/deckflash/internal/testutil/mocks"
	"github.com/vytor/deckflash/internal/worker"
)

func TestEventService_Record(t *testing.T) {
	repo := new(mocks.MockEventRepository)
	repo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []models.Event) bool {
		return len(events) == 2 && events[0].Name == "page_view" && events[1].Name == "install"
	})).Return(nil).Once()

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	svc := services.NewEventService(repo, analytics.NewTracker(pool, repo))

	n, err := svc.Record(context.Background(), []services.EventInput{
		{Name: "page_view", Properties: map[string]any{"path": "/"}},
		{Name: "install"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	pool.Stop()
	repo.AssertExpectations(t)
}

func TestEventService_RecordQueueFull(t *testing.T) {
	repo := new(mocks.MockEventRepository)
	pool := worker.NewPool(1, 1)
	tracker := analytics.NewTracker(pool, repo)
	require.True(t, tracker.TrackAll(context.Background(), []models.Event{tracker.NewEvent("filler", nil)}))

	svc := services.NewEventService(repo, tracker)
	n, err := svc.Record(context.Background(), []services.EventInput{{Name: "page_view"}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEventService_RecordValidation(t *testing.T) {
	svc := services.NewEventService(new(mocks.MockEventRepository), analytics.NewTracker(worker.NewPool(1, 1), nil))
	ctx := context.Background()

	_, err := svc.Record(ctx, nil)
	requireAppError(t, err, errors.ErrCodeValidation)

	_, err = svc.Record(ctx, []services.EventInput{{Name: "ok"}, {Name: ""}})
	appErr := requireAppError(t, err, errors.ErrCodeValidation)
	assert.Contains(t, appErr.Message, "events[1].name")

	_, err = svc.Record(ctx, make([]services.EventInput, services.MaxEventBatch+1))
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestEventService_List(t *testing.T) {
	repo := new(mocks.MockEventRepository)
	filter := models.EventFilter{Name: models.EventRoundStarted, Limit: 10}
	repo.On("List", mock.Anything, filter).Return(nil, nil).Once()
	svc := services.NewEventService(repo, nil)

	events, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	_, err = svc.List(context.Background(), models.EventFilter{Limit: services.MaxEventListLimit + 1})
	requireAppError(t, err, errors.ErrCodeValidation)

	repo.On("List", mock.Anything, models.EventFilter{}).Return(nil, stderrors.New("boom")).Once()
	_, err = svc.List(context.Background(), models.EventFilter{})
	requireAppError(t, err, errors.ErrCodeInternal)
	repo.AssertExpectations(t)
}
