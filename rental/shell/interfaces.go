package shell

import (
	"context"

	"github.com/AntonStoeckl/videorental/store"
)

// Logger interface for basic logging in command handlers.
type Logger = store.Logger

// ContextualLogger interface for context-aware logging in command handlers.
type ContextualLogger = store.ContextualLogger

// MetricsCollector interface for collecting command handler performance metrics.
type MetricsCollector = store.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = store.ContextualMetricsCollector

// Command represents the contract for all command types of the rental lifecycle.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all read-side query types.
type Query interface {
	QueryType() string
}

// Result is implemented by every handler result. It exposes the metadata the wrappers turn into logs and metrics.
type Result interface {
	Metadata() HandlerResult
}

// CoreCommandHandler defines the contract for components that process commands with business logic only.
// It is designed to be wrapped with observability decorators.
type CoreCommandHandler[C Command, R Result] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// CoreQueryHandler defines the contract for read-side handlers.
type CoreQueryHandler[Q Query, R Result] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
