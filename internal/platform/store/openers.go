package store

import (
	"context"
	"fmt"
	"time"

	chx "maintkpi/internal/platform/store/ch"
	"maintkpi/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// openPG opens the pool and returns the adapter once a ping succeeds
func openPG(ctx context.Context, cfg PGConfig, appName string, s *Store) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:              cfg.URL,
		MaxConns:         cfg.MaxConns,
		SlowMs:           cfg.SlowQueryMs,
		AppName:          appName,
		StatementTimeout: cfg.StatementTimeout,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	if err := pingWithBackoff(ctx, attempts, timeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return newPGAdapter(p, s.Metrics), nil
}

// pingWithBackoff retries ping with doubling sleeps up to backoffCeiling
func pingWithBackoff(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = ping(toCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:         cfg.CH.URL,
		DialTimeout: cfg.CH.DialTimeout,
		ClientInfo:  chx.BuildClientInfo(cfg.AppName, cfg.CH.ClientTag),
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c, s.Metrics), nil
}
