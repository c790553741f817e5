// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	"github.com/stretchr/testify/mock"
)

// MockTransactor records WithTransaction calls and runs fn with the caller's
// context unless a begin error is configured. The returned error is fn's, so
// tests observe rollback paths.
type MockTransactor struct {
	mock.Mock
}

var _ postgres.Transactor = (*MockTransactor)(nil)

func (m *MockTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// ExpectTransaction registers a transaction that will run its function
func (m *MockTransactor) ExpectTransaction() *mock.Call {
	return m.On("WithTransaction", mock.Anything, mock.AnythingOfType("func(context.Context) error")).Return(nil)
}
