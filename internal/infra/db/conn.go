// Package db holds database plumbing shared by the persistence adapters:
// the Conn abstraction, pool setup for postgres, transactions and migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Conn is the subset of *sql.DB the repositories need.
// *sql.DB and *circuitbreaker.DBCircuitBreaker both implement it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn inside a transaction on conn.
// The transaction is committed when fn returns nil and rolled back otherwise.
func WithTx(ctx context.Context, conn Conn, fn func(tx *sql.Tx) error) (err error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
