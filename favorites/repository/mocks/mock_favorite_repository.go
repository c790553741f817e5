package mocks

import (
	"context"

	"github.com/qolzam/telar/apps/feed/favorites/models"
	favoriteRepository "github.com/qolzam/telar/apps/feed/favorites/repository"
	"github.com/stretchr/testify/mock"
)

// MockFavoriteRepository is a mock implementation of FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

var _ favoriteRepository.FavoriteRepository = (*MockFavoriteRepository)(nil)

func (m *MockFavoriteRepository) Add(ctx context.Context, updateID, userID int64) (*models.Favorite, bool, error) {
	args := m.Called(ctx, updateID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Favorite), args.Bool(1), args.Error(2)
}

func (m *MockFavoriteRepository) Find(ctx context.Context, updateID, userID int64) (*models.Favorite, error) {
	args := m.Called(ctx, updateID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, updateID, userID int64) (bool, error) {
	args := m.Called(ctx, updateID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) FavoritedUpdateIDs(ctx context.Context, userID int64, updateIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, updateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}
