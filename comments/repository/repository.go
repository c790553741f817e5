// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/qolzam/telar/apps/feed/comments/models"
)

// CommentRepository defines the storage operations for comments
type CommentRepository interface {
	// Create inserts a new comment and sets its ID
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by its ID
	FindByID(ctx context.Context, id int64) (*models.Comment, error)

	// FindPageByUpdateID returns comments on an update ordered by created_at DESC, id DESC
	FindPageByUpdateID(ctx context.Context, updateID int64, limit, offset int) ([]*models.Comment, error)
}
