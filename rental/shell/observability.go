package shell

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/videorental/rental/core"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration (OpenTelemetry-compatible).
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"
	// CommandHandlerCallsMetric tracks total command handler calls.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"
	// QueryHandlerDurationMetric tracks query handler execution duration.
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"
	// DataInconsistencyMetric counts videos seen with more open rentals than copies.
	DataInconsistencyMetric = "rental_data_inconsistencies_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"
	// StatusError indicates a failure outside the business rules, e.g. storage.
	StatusError = "error"
	// StatusRejected indicates a business rule rejected the command.
	StatusRejected = "rejected"
	// StatusCanceled indicates the context was canceled.
	StatusCanceled = "canceled"
	// StatusTimeout indicates the context deadline was exceeded.
	StatusTimeout = "timeout"

	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandFailed    = "command handler failed"
	LogMsgQueryCompleted   = "query handler completed"
	LogMsgQueryFailed      = "query handler failed"
	LogMsgDataInconsistent = "data inconsistency detected"

	LogAttrCommandType    = "command_type"
	LogAttrQueryType      = "query_type"
	LogAttrStatus         = "status"
	LogAttrErrorKind      = "error_kind"
	LogAttrDurationMS     = "duration_ms"
	LogAttrError          = "error"
	LogAttrVideoID        = "video_id"
	LogAttrTotalInventory = "total_inventory"
	LogAttrOpenRentals    = "open_rentals"
)

// ClassifyOutcome maps a handler error to a metric status.
func ClassifyOutcome(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	}

	switch core.KindOf(err) {
	case core.KindValidation, core.KindNotFound, core.KindInventoryExhausted, core.KindNoOpenRental:
		return StatusRejected
	default:
		return StatusError
	}
}

// BuildLabels creates standard metric labels for handler operations.
func BuildLabels(typeAttr string, handlerType string, status string) map[string]string {
	return map[string]string{
		typeAttr:      handlerType,
		LogAttrStatus: status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordHandlerMetrics records the duration and the call counter of one handler call.
// It handles both context-aware and basic metrics collectors automatically.
func RecordHandlerMetrics(
	ctx context.Context,
	collector MetricsCollector,
	durationMetric string,
	callsMetric string,
	labels map[string]string,
	duration time.Duration,
) {

	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, durationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, callsMetric, labels)
		return
	}

	collector.RecordDuration(durationMetric, duration, labels)
	collector.IncrementCounter(callsMetric, labels)
}

// ReportInconsistency logs and counts an inconsistent inventory. It does nothing for consistent results.
func ReportInconsistency(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	collector MetricsCollector,
	labels map[string]string,
	result HandlerResult,
) {

	if !result.Inventory.Inconsistent {
		return
	}

	args := []any{
		LogAttrVideoID, result.VideoID.String(),
		LogAttrTotalInventory, result.Inventory.Total,
		LogAttrOpenRentals, result.Inventory.OpenRentals,
		LogAttrError, core.ErrDataInconsistency.Error(),
	}

	if contextualLogger != nil {
		contextualLogger.WarnContext(ctx, LogMsgDataInconsistent, args...)
	} else if logger != nil {
		logger.Warn(LogMsgDataInconsistent, args...)
	}

	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, DataInconsistencyMetric, labels)
		return
	}

	collector.IncrementCounter(DataInconsistencyMetric, labels)
}

// LogCommandStart logs the beginning of command processing.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandStarted, LogAttrCommandType, commandType)
	} else if logger != nil {
		logger.Info(LogMsgCommandStarted, LogAttrCommandType, commandType)
	}
}

// LogHandlerSuccess logs a successful handler call.
func LogHandlerSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	msg string,
	typeAttr string,
	handlerType string,
	duration time.Duration,
) {

	args := []any{
		typeAttr, handlerType,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Info(msg, args...)
	}
}

// LogHandlerError logs a failed handler call. Business rejections are logged at info level, everything else at error level.
func LogHandlerError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	msg string,
	typeAttr string,
	handlerType string,
	err error,
) {

	args := []any{
		typeAttr, handlerType,
		LogAttrErrorKind, string(core.KindOf(err)),
		LogAttrError, err.Error(),
	}

	rejected := ClassifyOutcome(err) == StatusRejected

	switch {
	case contextualLogger != nil && rejected:
		contextualLogger.InfoContext(ctx, msg, args...)
	case contextualLogger != nil:
		contextualLogger.ErrorContext(ctx, msg, args...)
	case logger != nil && rejected:
		logger.Info(msg, args...)
	case logger != nil:
		logger.Error(msg, args...)
	}
}
