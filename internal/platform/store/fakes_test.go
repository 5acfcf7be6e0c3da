package store

import (
	"context"
	"errors"

	"maintkpi/internal/platform/config"
)

type fakeRows struct {
	data   [][]any
	i      int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != len(row) {
		return errors.New("scan arity")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = row[i].(int64)
		case *string:
			*p = row[i].(string)
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return nil }

type fakeQuerier struct {
	rows     *fakeRows
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	q.lastSQL, q.lastArgs = sql, args
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return q.rows, nil
}

type fakeRow struct{ v int64 }

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.v
	return nil
}

type fakeSQL struct {
	fakeQuerier
	one     int64
	pingErr error
	closed  bool
}

func (f *fakeSQL) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (f *fakeSQL) QueryRow(context.Context, string, ...any) Row             { return fakeRow{v: f.one} }
func (f *fakeSQL) Ping(context.Context) error                               { return f.pingErr }
func (f *fakeSQL) Close() error                                             { f.closed = true; return nil }

type fakeCH struct {
	fakeQuerier
	pingErr  error
	closeErr error
}

func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { return f.closeErr }

func configFor(prefix string) config.Conf { return config.New().Prefix(prefix) }
