// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/qolzam/telar/apps/feed/users/models"
)

// UserDirectory resolves user identities in bulk
type UserDirectory interface {
	// FindByIDs returns the users that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
}

// ImageDirectory resolves avatar images in bulk
type ImageDirectory interface {
	// ImagesForUsers returns one avatar per user that has any image: the
	// primary image when flagged, otherwise the most recent upload
	ImagesForUsers(ctx context.Context, userIDs []int64) (map[int64]*models.Image, error)
}
