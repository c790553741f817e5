// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/qolzam/telar/apps/feed/favorites/models"
)

// FavoriteRepository defines the storage operations for favorites
type FavoriteRepository interface {
	// Add inserts a favorite unless one exists. created is false when the
	// returned favorite was already stored.
	Add(ctx context.Context, updateID, userID int64) (favorite *models.Favorite, created bool, err error)

	// Find returns the user's favorite on an update, or nil if absent
	Find(ctx context.Context, updateID, userID int64) (*models.Favorite, error)

	// Delete removes the favorite and reports whether a row was deleted
	Delete(ctx context.Context, updateID, userID int64) (bool, error)

	// FavoritedUpdateIDs returns the subset of updateIDs favorited by userID
	FavoritedUpdateIDs(ctx context.Context, userID int64, updateIDs []int64) (map[int64]bool, error)
}
