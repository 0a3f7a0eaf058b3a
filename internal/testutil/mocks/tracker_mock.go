package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTracker is a mock implementation of analytics.EventTracker
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Track(ctx context.Context, name string, props map[string]any) {
	m.Called(ctx, name, props)
}
