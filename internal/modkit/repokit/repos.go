// Package repokit holds the seams repositories are written against
package repokit

import (
	"context"

	"maintkpi/internal/platform/store"
)

type (
	// Queryer is the postgres surface
	Queryer = store.RowQuerier
	// Reader is the read surface every backend offers, postgres and clickhouse alike
	Reader = store.Querier
	// Rows is a result set
	Rows = store.Rows
	// Row is one row of a result set
	Row = store.Row
)

// Many runs sql on q and scans every row
func Many[T any](ctx context.Context, q Reader, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return store.Many(ctx, q, scan, sql, args...)
}
