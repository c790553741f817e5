package mocks

import (
	"context"

	"github.com/qolzam/telar/apps/feed/likes/models"
	likeRepository "github.com/qolzam/telar/apps/feed/likes/repository"
	"github.com/stretchr/testify/mock"
)

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

var _ likeRepository.LikeRepository = (*MockLikeRepository)(nil)

func (m *MockLikeRepository) AddUpdateLike(ctx context.Context, updateID, userID int64) (*models.Like, bool, error) {
	args := m.Called(ctx, updateID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Like), args.Bool(1), args.Error(2)
}

func (m *MockLikeRepository) FindUpdateLike(ctx context.Context, updateID, userID int64) (*models.Like, error) {
	args := m.Called(ctx, updateID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) DeleteUpdateLike(ctx context.Context, updateID, userID int64) (bool, error) {
	args := m.Called(ctx, updateID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) LikedUpdateIDs(ctx context.Context, userID int64, updateIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, updateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockLikeRepository) AddCommentLike(ctx context.Context, commentID, userID int64) (*models.Like, bool, error) {
	args := m.Called(ctx, commentID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Like), args.Bool(1), args.Error(2)
}

func (m *MockLikeRepository) FindCommentLike(ctx context.Context, commentID, userID int64) (*models.Like, error) {
	args := m.Called(ctx, commentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) DeleteCommentLike(ctx context.Context, commentID, userID int64) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}
