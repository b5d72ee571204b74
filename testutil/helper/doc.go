// Package helper provides testing utilities for the video store.
//
// It contains a factory for SQLite backed stores in a temporary directory, fixtures for videos
// and customers, a slog.Handler that captures log records and a spy MetricsCollector.
package helper
