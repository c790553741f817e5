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
	commentErrors "github.com/qolzam/telar/apps/feed/comments/errors"
	"github.com/qolzam/telar/apps/feed/comments/models"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var commentColumns = []string{"id", "content", "update_id", "user_id", "created_at"}

type postgresRepository struct {
	client *postgres.Client
	now    func() time.Time
}

// NewPostgresRepository creates a new PostgreSQL repository for comments
func NewPostgresRepository(client *postgres.Client) CommentRepository {
	return &postgresRepository{
		client: client,
		now:    time.Now,
	}
}

// Create inserts a new comment
func (r *postgresRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt == 0 {
		comment.CreatedAt = r.now().Unix()
	}

	query := `
		INSERT INTO comments (content, update_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.client.Executor(ctx).
		QueryRowxContext(ctx, query, comment.Content, comment.UpdateID, comment.UserID, comment.CreatedAt).
		Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// FindByID retrieves a comment by its ID
func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	query, args, err := psql.Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment query: %w", err)
	}

	var comment models.Comment
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &comment, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", commentErrors.ErrCommentNotFound, id)
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &comment, nil
}

// FindPageByUpdateID returns one page of an update's comments, newest first
func (r *postgresRepository) FindPageByUpdateID(ctx context.Context, updateID int64, limit, offset int) ([]*models.Comment, error) {
	query, args, err := psql.Select(commentColumns...).
		From("comments").
		Where(sq.Eq{"update_id": updateID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment page query: %w", err)
	}

	comments := []*models.Comment{}
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &comments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find comments page: %w", err)
	}
	return comments, nil
}
