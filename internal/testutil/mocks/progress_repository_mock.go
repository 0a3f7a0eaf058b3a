package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/deckflash/internal/progress"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Load(ctx context.Context) (*progress.Progress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Progress), args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, p *progress.Progress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
