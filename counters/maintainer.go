// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package counters keeps the denormalized engagement counters on updates in
// step with the child tables. Every change is one atomic UPDATE expression
// executed on the caller's transaction when the context carries one.
package counters

import (
	"context"
	"fmt"

	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
)

// Maintainer adjusts the counters stored on an update row
type Maintainer interface {
	IncrementComments(ctx context.Context, updateID int64) error
	IncrementLikes(ctx context.Context, updateID int64) error
	// DecrementLikes never takes the counter below zero. Decrementing a zero
	// counter is a no-op.
	DecrementLikes(ctx context.Context, updateID int64) error
	IncrementFavorites(ctx context.Context, updateID int64) error
	DecrementFavorites(ctx context.Context, updateID int64) error
}

// counter names a column on the updates table
type counter string

const (
	commentsCounter  counter = "comments"
	likesCounter     counter = "likes"
	favoritesCounter counter = "favorites"
)

type postgresMaintainer struct {
	client *postgres.Client
}

// NewPostgresMaintainer creates a Maintainer backed by PostgreSQL
func NewPostgresMaintainer(client *postgres.Client) Maintainer {
	return &postgresMaintainer{client: client}
}

func (m *postgresMaintainer) IncrementComments(ctx context.Context, updateID int64) error {
	return m.increment(ctx, commentsCounter, updateID)
}

func (m *postgresMaintainer) IncrementLikes(ctx context.Context, updateID int64) error {
	return m.increment(ctx, likesCounter, updateID)
}

func (m *postgresMaintainer) DecrementLikes(ctx context.Context, updateID int64) error {
	return m.decrement(ctx, likesCounter, updateID)
}

func (m *postgresMaintainer) IncrementFavorites(ctx context.Context, updateID int64) error {
	return m.increment(ctx, favoritesCounter, updateID)
}

func (m *postgresMaintainer) DecrementFavorites(ctx context.Context, updateID int64) error {
	return m.decrement(ctx, favoritesCounter, updateID)
}

func (m *postgresMaintainer) increment(ctx context.Context, c counter, updateID int64) error {
	query := fmt.Sprintf(`UPDATE updates SET %[1]s = %[1]s + 1 WHERE id = $1`, c)

	result, err := m.client.Executor(ctx).ExecContext(ctx, query, updateID)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", c, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", updateErrors.ErrUpdateNotFound, updateID)
	}
	return nil
}

// decrement matches no row when the counter is already zero, which leaves
// the value untouched
func (m *postgresMaintainer) decrement(ctx context.Context, c counter, updateID int64) error {
	query := fmt.Sprintf(`UPDATE updates SET %[1]s = %[1]s - 1 WHERE id = $1 AND %[1]s > 0`, c)

	if _, err := m.client.Executor(ctx).ExecContext(ctx, query, updateID); err != nil {
		return fmt.Errorf("failed to decrement %s: %w", c, err)
	}
	return nil
}
