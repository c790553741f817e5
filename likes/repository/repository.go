// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/qolzam/telar/apps/feed/likes/models"
)

// LikeRepository defines the storage operations for update and comment likes
type LikeRepository interface {
	// AddUpdateLike inserts a like unless one exists. created is false when
	// the returned like was already stored.
	AddUpdateLike(ctx context.Context, updateID, userID int64) (like *models.Like, created bool, err error)

	// FindUpdateLike returns the user's like on an update, or nil if absent
	FindUpdateLike(ctx context.Context, updateID, userID int64) (*models.Like, error)

	// DeleteUpdateLike removes the like and reports whether a row was deleted
	DeleteUpdateLike(ctx context.Context, updateID, userID int64) (bool, error)

	// LikedUpdateIDs returns the subset of updateIDs liked by userID
	LikedUpdateIDs(ctx context.Context, userID int64, updateIDs []int64) (map[int64]bool, error)

	AddCommentLike(ctx context.Context, commentID, userID int64) (like *models.Like, created bool, err error)
	FindCommentLike(ctx context.Context, commentID, userID int64) (*models.Like, error)
	DeleteCommentLike(ctx context.Context, commentID, userID int64) (bool, error)
	LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error)
}
