package store

import (
	"time"

	"maintkpi/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the boot ping loop, 0 means 20
	ConnectRetries int
	// PingTimeout bounds each boot ping, 0 means 3s
	PingTimeout time.Duration
	// StatementTimeout bounds each report query server side, 0 keeps the server default
	StatementTimeout time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
	ClientTag   string
}

// PGFromEnv reads DBURL, MAX_CONNS, SLOW_MS, LOG_SQL and STATEMENT_TIMEOUT from cfg, e.g. SERVICE_PGSQL_*
func PGFromEnv(cfg config.Conf) PGConfig {
	return PGConfig{
		Enabled:          true,
		URL:              cfg.MustString("DBURL"),
		MaxConns:         int32(cfg.MayInt("MAX_CONNS", 4)),
		SlowQueryMs:      cfg.MayInt("SLOW_MS", 500),
		LogSQL:           cfg.MayBool("LOG_SQL", false),
		StatementTimeout: cfg.MayDuration("STATEMENT_TIMEOUT", 20*time.Second),
	}
}

// CHFromEnv reads DBURL and DIAL_TIMEOUT from cfg, e.g. SERVICE_CLICKHOUSE_*
func CHFromEnv(cfg config.Conf, tag string) CHConfig {
	return CHConfig{
		Enabled:     true,
		URL:         cfg.MustString("DBURL"),
		DialTimeout: cfg.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		ClientTag:   tag,
	}
}
