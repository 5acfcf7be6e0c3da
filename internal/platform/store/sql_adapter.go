package store

import (
	"context"
	"errors"
	"time"

	"maintkpi/internal/platform/metrics"
	"maintkpi/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter wraps pg.PG as a RowQuerier and traces every statement when a tracer is set
type pgAdapter struct {
	p *pg.PG
	m *metrics.Metrics
}

func newPGAdapter(p *pg.PG, m *metrics.Metrics) *pgAdapter { return &pgAdapter{p: p, m: m} }

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.p.Pool.Exec(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	return ct, err
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	if err != nil {
		a.emit(ctx, sql, args, start, err)
		return nil, err
	}
	// traced on Close so the event covers the full scan
	return &rows{r: rs, done: func(err error) { a.emit(ctx, sql, args, start, err) }}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.p.Pool.QueryRow(ctx, sql, args...)
	return row{r: r, done: func(err error) { a.emit(ctx, sql, args, start, err) }}
}

func (a *pgAdapter) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	elapsed := time.Since(start)
	a.m.ObserveQuery("pg", elapsed, err)
	if a.p.Tracer == nil {
		return
	}
	elapsedUS := elapsed.Microseconds()
	a.p.Tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      a.p.SlowMs > 0 && elapsedUS >= int64(a.p.SlowMs)*1000,
	})
}

type row struct {
	r    pgx.Row
	done func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	x.done(err)
	return err
}

type rows struct {
	r      pgx.Rows
	done   func(error)
	closed bool
}

func (x *rows) Next() bool            { return x.r.Next() }
func (x *rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *rows) Err() error            { return x.r.Err() }

func (x *rows) Close() {
	x.r.Close()
	if !x.closed {
		x.closed = true
		x.done(x.r.Err())
	}
}

func (x *rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

var _ CommandTag = pgconn.CommandTag{}
