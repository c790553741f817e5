package mocks

import (
	"context"

	"github.com/qolzam/telar/apps/feed/counters"
	"github.com/stretchr/testify/mock"
)

// MockMaintainer is a mock implementation of counters.Maintainer
type MockMaintainer struct {
	mock.Mock
}

var _ counters.Maintainer = (*MockMaintainer)(nil)

func (m *MockMaintainer) IncrementComments(ctx context.Context, updateID int64) error {
	return m.Called(ctx, updateID).Error(0)
}

func (m *MockMaintainer) IncrementLikes(ctx context.Context, updateID int64) error {
	return m.Called(ctx, updateID).Error(0)
}

func (m *MockMaintainer) DecrementLikes(ctx context.Context, updateID int64) error {
	return m.Called(ctx, updateID).Error(0)
}

func (m *MockMaintainer) IncrementFavorites(ctx context.Context, updateID int64) error {
	return m.Called(ctx, updateID).Error(0)
}

func (m *MockMaintainer) DecrementFavorites(ctx context.Context, updateID int64) error {
	return m.Called(ctx, updateID).Error(0)
}
