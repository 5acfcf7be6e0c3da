package store

import (
	"maintkpi/internal/platform/logger"
	"maintkpi/internal/platform/metrics"
)

// Option configures Store before any backend is opened
type Option func(*Store) error

// WithLogger sets the logger the SQL tracer writes to
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithMetrics times every record query of both backends. A nil set records nothing
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) error {
		s.Metrics = m
		return nil
	}
}
