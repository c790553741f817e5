// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	"github.com/qolzam/telar/apps/feed/users/models"
)

type postgresUserDirectory struct {
	client *postgres.Client
}

// NewPostgresUserDirectory creates a UserDirectory backed by the users table
func NewPostgresUserDirectory(client *postgres.Client) UserDirectory {
	return &postgresUserDirectory{client: client}
}

func (r *postgresUserDirectory) FindByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	users := []*models.User{}
	if len(ids) == 0 {
		return users, nil
	}

	query := `SELECT id, name, email FROM users WHERE id = ANY($1)`
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &users, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to find users by ids: %w", err)
	}
	return users, nil
}

type postgresImageDirectory struct {
	client *postgres.Client
}

// NewPostgresImageDirectory creates an ImageDirectory backed by user_images
func NewPostgresImageDirectory(client *postgres.Client) ImageDirectory {
	return &postgresImageDirectory{client: client}
}

func (r *postgresImageDirectory) ImagesForUsers(ctx context.Context, userIDs []int64) (map[int64]*models.Image, error) {
	result := make(map[int64]*models.Image, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT DISTINCT ON (user_id) id, user_id, path
		FROM user_images
		WHERE user_id = ANY($1)
		ORDER BY user_id, is_primary DESC, created_at DESC, id DESC
	`

	var images []*models.Image
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &images, query, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("failed to load user images: %w", err)
	}
	for _, image := range images {
		result[image.UserID] = image
	}
	return result, nil
}
