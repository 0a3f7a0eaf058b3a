package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/errors"
	"github.com/vytor/deckflash/internal/models"
	"github.com/vytor/deckflash/internal/progress"
	"github.com/vytor/deckflash/internal/repository/sqlite"
	"github.com/vytor/deckflash/internal/services"
	"github.com/vytor/deckflash/internal/testutil"
	"github.com/vytor/deckflash/internal/testutil/mocks"
)

func answer(t *testing.T, f *trainingFixture, stack, mode string, target, given int) {
	t.Helper()
	_, err := f.svc.SubmitAnswer(context.Background(), services.Answer{
		Stack: stack, Mode: mode, TargetPosition: target, AnswerPosition: given, ElapsedSeconds: 1,
	})
	require.NoError(t, err)
}

func TestStatsService_Summary(t *testing.T) {
	f := newTrainingFixture(t)
	answer(t, f, deck.Mnemonica, "card-to-position", 1, 1)
	answer(t, f, deck.Mnemonica, "card-to-position", 2, 3)
	answer(t, f, deck.Aronson, "card-to-position", 5, 5)
	answer(t, f, deck.Mnemonica, "position-to-card", 9, 9)

	summary, err := f.stats.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary, 3)

	assert.Equal(t, "card-to-position", summary[0].Mode)
	assert.Equal(t, deck.Aronson, summary[0].Stack)
	assert.Equal(t, deck.Mnemonica, summary[1].Stack)
	assert.Equal(t, 2, summary[1].Total)
	assert.InDelta(t, 50.0, summary[1].Accuracy, 0.001)
	assert.Equal(t, "position-to-card", summary[2].Mode)
}

func TestStatsService_History(t *testing.T) {
	f := newTrainingFixture(t)
	for i := 1; i <= 5; i++ {
		answer(t, f, deck.Mnemonica, "card-to-position", i, i)
	}

	history, err := f.stats.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 5, history[0].TargetPosition)
	assert.Equal(t, 4, history[1].TargetPosition)

	history, err = f.stats.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, history, 5)

	_, err = f.stats.History(context.Background(), 101)
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestStatsService_HistoryBeyondDefaultCap(t *testing.T) {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	const kept = 600
	store := services.NewProgressStore(sqlite.NewProgressRepository(sqlite.NewKVRepository(db), kept), kept)
	ctx := context.Background()
	require.NoError(t, store.Update(ctx, func(p *progress.Progress) error {
		for i := 0; i < kept; i++ {
			p.Record(progress.AnswerRecord{Mode: "card-to-position", Stack: deck.Mnemonica, TargetPosition: i%52 + 1, AnswerPosition: 1})
		}
		return nil
	}))

	svc := services.NewStatsService(store, deck.DefaultRegistry(), nil)
	history, err := svc.History(ctx, kept)
	require.NoError(t, err)
	assert.Len(t, history, kept)

	_, err = svc.History(ctx, kept+1)
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestStatsService_Reset(t *testing.T) {
	f := newTrainingFixture(t)
	ctx := context.Background()
	answer(t, f, deck.Mnemonica, "card-to-position", 1, 1)
	answer(t, f, deck.Aronson, "card-to-position", 1, 1)
	answer(t, f, deck.Aronson, "position-to-card", 1, 2)

	require.NoError(t, f.stats.Reset(ctx, "", "ARONSON"))
	summary, err := f.stats.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, deck.Mnemonica, summary[0].Stack)
	f.tracker.AssertCalled(t, "Track", mock.Anything, models.EventStatsReset, map[string]any{"mode": "", "stack": deck.Aronson})

	require.NoError(t, f.stats.Reset(ctx, "", ""))
	summary, err = f.stats.Summary(ctx)
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestStatsService_ResetValidation(t *testing.T) {
	f := newTrainingFixture(t)
	ctx := context.Background()

	requireAppError(t, f.stats.Reset(ctx, "sideways", ""), errors.ErrCodeValidation)
	requireAppError(t, f.stats.Reset(ctx, "", "nope"), errors.ErrCodeNotFound)
}

func TestStatsService_LoadError(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("Load", mock.Anything).Return(nil, stderrors.New("corrupt"))
	svc := services.NewStatsService(services.NewProgressStore(repo, 10), deck.DefaultRegistry(), nil)

	_, err := svc.Summary(context.Background())
	requireAppError(t, err, errors.ErrCodeInternal)
	_, err = svc.History(context.Background(), 1)
	requireAppError(t, err, errors.ErrCodeInternal)
	requireAppError(t, svc.Reset(context.Background(), "", ""), errors.ErrCodeInternal)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
