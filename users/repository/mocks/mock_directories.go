package mocks

import (
	"context"

	"github.com/qolzam/telar/apps/feed/users/models"
	userRepository "github.com/qolzam/telar/apps/feed/users/repository"
	"github.com/stretchr/testify/mock"
)

// MockUserDirectory is a mock implementation of UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

var _ userRepository.UserDirectory = (*MockUserDirectory)(nil)

func (m *MockUserDirectory) FindByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockImageDirectory is a mock implementation of ImageDirectory
type MockImageDirectory struct {
	mock.Mock
}

var _ userRepository.ImageDirectory = (*MockImageDirectory)(nil)

func (m *MockImageDirectory) ImagesForUsers(ctx context.Context, userIDs []int64) (map[int64]*models.Image, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*models.Image), args.Error(1)
}
