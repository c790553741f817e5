// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/qolzam/telar/apps/feed/favorites/models"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
)

type postgresRepository struct {
	client *postgres.Client
	now    func() time.Time
}

// NewPostgresRepository creates a new PostgreSQL repository for favorites
func NewPostgresRepository(client *postgres.Client) FavoriteRepository {
	return &postgresRepository{
		client: client,
		now:    time.Now,
	}
}

// Add inserts a favorite, reading back the stored row when ON CONFLICT skips
// a duplicate. A unique violation has aborted the transaction and is
// returned for the caller to settle after rollback.
func (r *postgresRepository) Add(ctx context.Context, updateID, userID int64) (*models.Favorite, bool, error) {
	query := `
		INSERT INTO favorites (update_id, user_id, favorited_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (update_id, user_id) DO NOTHING
		RETURNING id, update_id, user_id, favorited_at
	`

	var favorite models.Favorite
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &favorite, query, updateID, userID, r.now().Unix())
	switch {
	case err == nil:
		return &favorite, true, nil
	case errors.Is(err, sql.ErrNoRows):
		existing, findErr := r.Find(ctx, updateID, userID)
		if findErr != nil {
			return nil, false, findErr
		}
		if existing == nil {
			return nil, false, fmt.Errorf("favorite on update %d by user %d conflicted but was not found", updateID, userID)
		}
		return existing, false, nil
	default:
		return nil, false, fmt.Errorf("failed to create favorite: %w", err)
	}
}

// Find returns the favorite or nil when the user has not favorited the update
func (r *postgresRepository) Find(ctx context.Context, updateID, userID int64) (*models.Favorite, error) {
	query := `
		SELECT id, update_id, user_id, favorited_at
		FROM favorites
		WHERE update_id = $1 AND user_id = $2
	`

	var favorite models.Favorite
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &favorite, query, updateID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

func (r *postgresRepository) Delete(ctx context.Context, updateID, userID int64) (bool, error) {
	result, err := r.client.Executor(ctx).ExecContext(ctx,
		`DELETE FROM favorites WHERE update_id = $1 AND user_id = $2`, updateID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *postgresRepository) FavoritedUpdateIDs(ctx context.Context, userID int64, updateIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(updateIDs))
	if len(updateIDs) == 0 {
		return result, nil
	}

	var ids []int64
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &ids,
		`SELECT update_id FROM favorites WHERE user_id = $1 AND update_id = ANY($2)`,
		userID, pq.Array(updateIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
