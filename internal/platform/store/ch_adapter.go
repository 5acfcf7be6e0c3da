package store

import (
	"context"
	"errors"
	"time"

	"maintkpi/internal/platform/metrics"
	"maintkpi/internal/platform/store/ch"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func newCHAdapter(c *ch.CH, m *metrics.Metrics) Clickhouse { return &clickhouseAdapter{inner: c, m: m} }

// clickhouseAdapter adapts *ch.CH to Clickhouse
type clickhouseAdapter struct {
	inner *ch.CH
	m     *metrics.Metrics
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		a.m.ObserveQuery("ch", time.Since(start), err)
		return nil, err
	}
	return &chRows{r: r, done: func(err error) { a.m.ObserveQuery("ch", time.Since(start), err) }}, nil
}

func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil clickhouse adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

// chRows narrows driver.Rows to Rows; done runs once, on the first Close
type chRows struct {
	r      driver.Rows
	done   func(error)
	closed bool
}

func (r *chRows) Next() bool             { return r.r.Next() }
func (r *chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r *chRows) Err() error             { return r.r.Err() }
func (r *chRows) Columns() []string      { return r.r.Columns() }

func (r *chRows) Close() {
	if r.closed {
		return
	}
	r.closed = true
	err := r.r.Close()
	if err == nil {
		err = r.r.Err()
	}
	if r.done != nil {
		r.done(err)
	}
}
