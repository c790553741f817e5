// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package postgres

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Transactor runs a function inside a single database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// Stats is a snapshot of connection pool and transaction counters
type Stats struct {
	OpenConnections int   `json:"openConnections"`
	InUse           int   `json:"inUse"`
	Idle            int   `json:"idle"`
	Committed       int64 `json:"committed"`
	RolledBack      int64 `json:"rolledBack"`
	Failed          int64 `json:"failed"`
}

type txStats struct {
	committed  atomic.Int64
	rolledBack atomic.Int64
	failed     atomic.Int64
}

// ContextWithTx stores tx in ctx so repositories join it
func ContextWithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction carried by ctx, if any
func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok && tx != nil
}

// Executor returns the transaction from context or the pool
func Executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return db
}

// Executor returns the transaction from context or the client's pool
func (c *Client) Executor(ctx context.Context) sqlx.ExtContext {
	return Executor(ctx, c.db)
}

// WithTransaction executes fn within a database transaction. The transaction
// is committed when fn returns nil and rolled back otherwise. A call made with
// a context that already carries a transaction joins it.
func (c *Client) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		c.stats.failed.Add(1)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ContextWithTx(ctx, tx)); err != nil {
		c.stats.rolledBack.Add(1)
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		c.stats.failed.Add(1)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	c.stats.committed.Add(1)

	return nil
}
