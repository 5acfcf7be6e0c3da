package modkit

import (
	"fmt"

	"maintkpi/internal/modkit/repokit"
	"maintkpi/internal/platform/config"
	"maintkpi/internal/platform/logger"
	"maintkpi/internal/platform/metrics"
	"maintkpi/internal/platform/store"
	ptime "maintkpi/internal/platform/time"
)

// Record source backends
const (
	SourcePG = "pg"
	SourceCH = "ch"
)

// Deps is what every module gets at construction. Nil stores are allowed;
// a module asks for the backend it needs through Reader
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.Queryer
	CH      store.Clickhouse
	Metrics *metrics.Metrics
	Clock   ptime.Clock
}

// Reader returns the backend named by source
func (d Deps) Reader(source string) (repokit.Reader, error) {
	switch source {
	case SourcePG, "":
		if d.PG == nil {
			return nil, fmt.Errorf("modkit: postgres source selected but not configured")
		}
		return d.PG, nil
	case SourceCH:
		if d.CH == nil {
			return nil, fmt.Errorf("modkit: clickhouse source selected but not configured")
		}
		return d.CH, nil
	}
	return nil, fmt.Errorf("modkit: unknown record source %q", source)
}

// Now returns the clock, defaulting to the system clock
func (d Deps) Now() ptime.Clock {
	if d.Clock == nil {
		return ptime.System
	}
	return d.Clock
}
