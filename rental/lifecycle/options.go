package lifecycle

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/videorental/rental/shell"
)

// ErrNilClock is returned when WithClock is given a nil function.
var ErrNilClock = errors.New("clock must not be nil")

// ErrInvalidLoanPeriod is returned when WithLoanPeriod is given a non-positive duration.
var ErrInvalidLoanPeriod = errors.New("loan period must be positive")

// Option defines a functional option for configuring the Manager.
type Option func(*settings) error

type settings struct {
	loanPeriod       time.Duration
	clock            func() time.Time
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
}

// WithLoanPeriod sets the time a customer may keep a video.
func WithLoanPeriod(loanPeriod time.Duration) Option {
	return func(s *settings) error {
		if loanPeriod <= 0 {
			return ErrInvalidLoanPeriod
		}

		s.loanPeriod = loanPeriod

		return nil
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) error {
		if clock == nil {
			return ErrNilClock
		}

		s.clock = clock

		return nil
	}
}

// WithLogger sets the logger for all wrapped handlers.
func WithLogger(logger shell.Logger) Option {
	return func(s *settings) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for all wrapped handlers. It takes precedence over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *settings) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for all wrapped handlers.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(s *settings) error {
		s.metricsCollector = collector
		return nil
	}
}
