package mocks

import (
	"context"

	"github.com/qolzam/telar/apps/feed/notifications"
	"github.com/stretchr/testify/mock"
)

// MockDispatcher is a mock implementation of notifications.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

var _ notifications.Dispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) Dispatch(ctx context.Context, n notifications.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockDispatcher) Close() error {
	return m.Called().Error(0)
}
