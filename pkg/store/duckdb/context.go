package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction makes stores called with ctx run their statements in tx.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the transaction attached by WithTransaction, or nil
// when the stores should use the database directly.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
