// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	"github.com/qolzam/telar/apps/feed/updates/models"
	updateRepository "github.com/qolzam/telar/apps/feed/updates/repository"
	"github.com/stretchr/testify/mock"
)

// MockUpdateRepository is a mock implementation of UpdateRepository
type MockUpdateRepository struct {
	mock.Mock
}

var _ updateRepository.UpdateRepository = (*MockUpdateRepository)(nil)

func (m *MockUpdateRepository) Create(ctx context.Context, update *models.Update) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockUpdateRepository) FindByID(ctx context.Context, id int64) (*models.Update, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Update), args.Error(1)
}

func (m *MockUpdateRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUpdateRepository) FindPage(ctx context.Context, filter updateRepository.UpdateFilter, limit, offset int) ([]*models.Update, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Update), args.Error(1)
}

func (m *MockUpdateRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.Update, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Update), args.Error(1)
}

func (m *MockUpdateRepository) AttachTags(ctx context.Context, updateID int64, names []string) error {
	args := m.Called(ctx, updateID, names)
	return args.Error(0)
}

func (m *MockUpdateRepository) TagsForUpdates(ctx context.Context, updateIDs []int64) (map[int64][]string, error) {
	args := m.Called(ctx, updateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]string), args.Error(1)
}
