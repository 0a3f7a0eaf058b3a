package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/deckflash/internal/models"
)

// MockPreferencesRepository is a mock implementation of repository.PreferencesRepository
type MockPreferencesRepository struct {
	mock.Mock
}

func (m *MockPreferencesRepository) Load(ctx context.Context) (*models.Preferences, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preferences), args.Error(1)
}

func (m *MockPreferencesRepository) Save(ctx context.Context, prefs models.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}
