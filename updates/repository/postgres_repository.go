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

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
	"github.com/qolzam/telar/apps/feed/updates/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var updateColumns = []string{
	"u.id", "u.user_id", "u.content", "u.created_at", "u.likes", "u.comments", "u.favorites",
}

// postgresRepository implements UpdateRepository using raw SQL and squirrel
type postgresRepository struct {
	client *postgres.Client
	now    func() time.Time
}

// NewPostgresRepository creates a new PostgreSQL repository for updates
func NewPostgresRepository(client *postgres.Client) UpdateRepository {
	return &postgresRepository{
		client: client,
		now:    time.Now,
	}
}

// Create inserts a new update
func (r *postgresRepository) Create(ctx context.Context, update *models.Update) error {
	if update.CreatedAt == 0 {
		update.CreatedAt = r.now().Unix()
	}

	query := `
		INSERT INTO updates (user_id, content, created_at, likes, comments, favorites)
		VALUES ($1, $2, $3, 0, 0, 0)
		RETURNING id
	`

	err := r.client.Executor(ctx).QueryRowxContext(ctx, query, update.UserID, update.Content, update.CreatedAt).Scan(&update.ID)
	if err != nil {
		return fmt.Errorf("failed to create update: %w", err)
	}

	update.Likes, update.Comments, update.Favorites = 0, 0, 0
	return nil
}

// FindByID retrieves an update by its ID
func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*models.Update, error) {
	query, args, err := psql.Select(updateColumns...).
		From("updates u").
		Where(sq.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var update models.Update
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &update, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", updateErrors.ErrUpdateNotFound, id)
		}
		return nil, fmt.Errorf("failed to find update: %w", err)
	}

	return &update, nil
}

// Exists reports whether an update with the given ID exists
func (r *postgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.client.Executor(ctx).QueryRowxContext(ctx, `SELECT EXISTS(SELECT 1 FROM updates WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check update existence: %w", err)
	}
	return exists, nil
}

// FindPage returns one page of updates, newest first. Ties on created_at are
// broken by id so that consecutive pages never overlap.
func (r *postgresRepository) FindPage(ctx context.Context, filter UpdateFilter, limit, offset int) ([]*models.Update, error) {
	builder := psql.Select(updateColumns...).From("updates u")

	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"u.user_id": *filter.UserID})
	}

	if filter.Tag != nil {
		tag := models.NormalizeTag(*filter.Tag)
		if tag == "" {
			return []*models.Update{}, nil
		}
		builder = builder.
			Join("update_tags ut ON ut.update_id = u.id").
			Join("tags t ON t.id = ut.tag_id").
			Where(sq.Eq{"t.name": tag})
	}

	query, args, err := builder.
		OrderBy("u.created_at DESC", "u.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build page query: %w", err)
	}

	updates := []*models.Update{}
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &updates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find updates page: %w", err)
	}

	return updates, nil
}

// FindByUserID returns every update by a user, newest first
func (r *postgresRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.Update, error) {
	query, args, err := psql.Select(updateColumns...).
		From("updates u").
		Where(sq.Eq{"u.user_id": userID}).
		OrderBy("u.created_at DESC", "u.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updates := []*models.Update{}
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &updates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find updates by user: %w", err)
	}

	return updates, nil
}

// AttachTags creates missing tags and links them to the update. The DO UPDATE
// clause makes RETURNING yield ids for tags that already existed.
func (r *postgresRepository) AttachTags(ctx context.Context, updateID int64, names []string) error {
	names = models.NormalizeTags(names)
	if len(names) == 0 {
		return nil
	}

	insertTags := psql.Insert("tags").Columns("name")
	for _, name := range names {
		insertTags = insertTags.Values(name)
	}
	query, args, err := insertTags.
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build tag insert: %w", err)
	}

	var tagIDs []int64
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &tagIDs, query, args...); err != nil {
		return fmt.Errorf("failed to upsert tags: %w", err)
	}

	link := psql.Insert("update_tags").Columns("update_id", "tag_id")
	for _, tagID := range tagIDs {
		link = link.Values(updateID, tagID)
	}
	query, args, err = link.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update_tags insert: %w", err)
	}

	if _, err := r.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to link tags: %w", err)
	}

	return nil
}

// TagsForUpdates bulk loads tag names keyed by update ID in a single query
func (r *postgresRepository) TagsForUpdates(ctx context.Context, updateIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(updateIDs))
	if len(updateIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ut.update_id, t.name
		FROM update_tags ut
		JOIN tags t ON t.id = ut.tag_id
		WHERE ut.update_id = ANY($1)
		ORDER BY ut.update_id, t.name
	`

	type tagRow struct {
		UpdateID int64  `db:"update_id"`
		Name     string `db:"name"`
	}

	var rows []tagRow
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &rows, query, pq.Array(updateIDs)); err != nil {
		return nil, fmt.Errorf("failed to load tags for updates: %w", err)
	}

	for _, row := range rows {
		result[row.UpdateID] = append(result[row.UpdateID], row.Name)
	}

	return result, nil
}
