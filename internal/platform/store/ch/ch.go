// Package ch is the ClickHouse client for the columnar replica of the work order tables
package ch

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the client. URL is a clickhouse:// DSN
type Config struct {
	URL         string
	DialTimeout time.Duration
	ClientInfo  clickhouse.ClientInfo
}

// CH is a native protocol connection pool
type CH struct {
	conn driver.Conn
}

var openConn = clickhouse.Open

// Options parses cfg into driver options
func Options(cfg Config) (*clickhouse.Options, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("clickhouse dsn: %w", err)
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if len(cfg.ClientInfo.Products) > 0 {
		opts.ClientInfo = cfg.ClientInfo
	}
	return opts, nil
}

// Open connects and pings once
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := openConn(opts)
	if err != nil {
		return nil, err
	}
	c := &CH{conn: conn}
	if err := c.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	return c, nil
}

// Query runs a read with positional ? arguments
func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// Ping checks the server answers
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close releases the pool
func (c *CH) Close() error { return c.conn.Close() }
