package httpapi

import (
	"log/slog"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Option defines a functional option for configuring the Server.
type Option func(*Server) error

// WithLogger sets the logger for request logs and server errors. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger != nil {
			s.logger = logger
		}

		return nil
	}
}

// WithMetricsReader enables GET /metrics, which serves everything reader collects.
func WithMetricsReader(reader sdkmetric.Reader) Option {
	return func(s *Server) error {
		s.metricsReader = reader
		return nil
	}
}
