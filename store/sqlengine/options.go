package sqlengine

import (
	"github.com/AntonStoeckl/videorental/store"
)

// Supported SQL dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithTablePrefix prefixes all table and index names, e.g. "test_" gives test_videos, test_customers, test_rentals.
func WithTablePrefix(prefix string) Option {
	return func(s *Store) error {
		if prefix == "" {
			return store.ErrEmptyTablePrefix
		}

		for _, r := range prefix {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
				return store.ErrInvalidTablePrefix
			}
		}

		s.tables = newTableNames(prefix)

		return nil
	}
}

// WithDialect selects the SQL dialect used to build queries. The default is DialectPostgres.
func WithDialect(dialect string) Option {
	return func(s *Store) error {
		switch dialect {
		case DialectPostgres, DialectSQLite:
			s.dialect = dialect
			return nil
		default:
			return store.ErrUnsupportedDialect
		}
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Operation summaries like created records and closed rentals (production-safe)
// Warn level: Non-critical issues like rollback or cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger store.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger.
func WithContextualLogger(logger store.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives statement durations per operation and database error counts.
func WithMetrics(collector store.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}
