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
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	"github.com/qolzam/telar/apps/feed/likes/models"
)

// likeTable describes one of the like tables. Both share a layout and differ
// only in the subject column.
type likeTable struct {
	name          string
	subjectColumn string
	kind          models.SubjectKind
}

var (
	updateLikes  = likeTable{name: "update_likes", subjectColumn: "update_id", kind: models.SubjectUpdate}
	commentLikes = likeTable{name: "comment_likes", subjectColumn: "comment_id", kind: models.SubjectComment}
)

type likeRow struct {
	ID        int64 `db:"id"`
	SubjectID int64 `db:"subject_id"`
	UserID    int64 `db:"user_id"`
	LikedAt   int64 `db:"liked_at"`
}

func (r likeRow) toModel(kind models.SubjectKind) *models.Like {
	return &models.Like{
		ID:        r.ID,
		Subject:   kind,
		SubjectID: r.SubjectID,
		UserID:    r.UserID,
		LikedAt:   r.LikedAt,
	}
}

type postgresRepository struct {
	client *postgres.Client
	now    func() time.Time
}

// NewPostgresRepository creates a new PostgreSQL repository for likes
func NewPostgresRepository(client *postgres.Client) LikeRepository {
	return &postgresRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *postgresRepository) AddUpdateLike(ctx context.Context, updateID, userID int64) (*models.Like, bool, error) {
	return r.add(ctx, updateLikes, updateID, userID)
}

func (r *postgresRepository) FindUpdateLike(ctx context.Context, updateID, userID int64) (*models.Like, error) {
	return r.find(ctx, updateLikes, updateID, userID)
}

func (r *postgresRepository) DeleteUpdateLike(ctx context.Context, updateID, userID int64) (bool, error) {
	return r.delete(ctx, updateLikes, updateID, userID)
}

func (r *postgresRepository) LikedUpdateIDs(ctx context.Context, userID int64, updateIDs []int64) (map[int64]bool, error) {
	return r.likedIDs(ctx, updateLikes, userID, updateIDs)
}

func (r *postgresRepository) AddCommentLike(ctx context.Context, commentID, userID int64) (*models.Like, bool, error) {
	return r.add(ctx, commentLikes, commentID, userID)
}

func (r *postgresRepository) FindCommentLike(ctx context.Context, commentID, userID int64) (*models.Like, error) {
	return r.find(ctx, commentLikes, commentID, userID)
}

func (r *postgresRepository) DeleteCommentLike(ctx context.Context, commentID, userID int64) (bool, error) {
	return r.delete(ctx, commentLikes, commentID, userID)
}

func (r *postgresRepository) LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	return r.likedIDs(ctx, commentLikes, userID, commentIDs)
}

// add inserts a like. ON CONFLICT turns a duplicate into an empty result and
// the stored like is read back. A unique violation raised anyway has aborted
// the surrounding transaction, so it is returned for the caller to settle
// after rollback.
func (r *postgresRepository) add(ctx context.Context, t likeTable, subjectID, userID int64) (*models.Like, bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, user_id, liked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (%[2]s, user_id) DO NOTHING
		RETURNING id, %[2]s AS subject_id, user_id, liked_at
	`, t.name, t.subjectColumn)

	var row likeRow
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &row, query, subjectID, userID, r.now().Unix())
	switch {
	case err == nil:
		return row.toModel(t.kind), true, nil
	case errors.Is(err, sql.ErrNoRows):
		existing, findErr := r.find(ctx, t, subjectID, userID)
		if findErr != nil {
			return nil, false, findErr
		}
		if existing == nil {
			return nil, false, fmt.Errorf("like on %s %d by user %d conflicted but was not found", t.name, subjectID, userID)
		}
		return existing, false, nil
	default:
		return nil, false, fmt.Errorf("failed to insert into %s: %w", t.name, err)
	}
}

func (r *postgresRepository) find(ctx context.Context, t likeTable, subjectID, userID int64) (*models.Like, error) {
	query := fmt.Sprintf(`
		SELECT id, %[2]s AS subject_id, user_id, liked_at
		FROM %[1]s
		WHERE %[2]s = $1 AND user_id = $2
	`, t.name, t.subjectColumn)

	var row likeRow
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &row, query, subjectID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find like in %s: %w", t.name, err)
	}
	return row.toModel(t.kind), nil
}

func (r *postgresRepository) delete(ctx context.Context, t likeTable, subjectID, userID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, t.name, t.subjectColumn)

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, subjectID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

// likedIDs resolves the viewer's likes for a whole page in one query
func (r *postgresRepository) likedIDs(ctx context.Context, t likeTable, userID int64, subjectIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 AND %s = ANY($2)`, t.subjectColumn, t.name, t.subjectColumn)

	var ids []int64
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &ids, query, userID, pq.Array(subjectIDs)); err != nil {
		return nil, fmt.Errorf("failed to load likes from %s: %w", t.name, err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
