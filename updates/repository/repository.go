// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/qolzam/telar/apps/feed/updates/models"
)

// UpdateFilter restricts a page of updates. At most one field is set.
type UpdateFilter struct {
	UserID *int64
	Tag    *string
}

// UpdateRepository defines the storage operations for updates and their tags
type UpdateRepository interface {
	// Create inserts a new update and sets its ID
	Create(ctx context.Context, update *models.Update) error

	// FindByID retrieves an update by its ID
	FindByID(ctx context.Context, id int64) (*models.Update, error)

	// Exists reports whether an update with the given ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// FindPage returns updates ordered by created_at DESC, id DESC
	FindPage(ctx context.Context, filter UpdateFilter, limit, offset int) ([]*models.Update, error)

	// FindByUserID returns every update by a user, newest first
	FindByUserID(ctx context.Context, userID int64) ([]*models.Update, error)

	// AttachTags creates missing tags and links them to the update
	AttachTags(ctx context.Context, updateID int64, names []string) error

	// TagsForUpdates bulk loads tag names keyed by update ID
	TagsForUpdates(ctx context.Context, updateIDs []int64) (map[int64][]string, error)
}
