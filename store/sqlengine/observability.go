package sqlengine

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/videorental/store"
)

const (
	metricOperationDuration = "videostore_store_operation_duration_seconds"
	metricDatabaseErrors    = "videostore_store_database_errors_total"
	labelOperation          = "operation"
	labelStatus             = "status"
	labelErrorType          = "error_type"
	statusSuccess           = "success"
	statusError             = "error"
	statusCommitted         = "committed"
	statusRolledBack        = "rolled_back"
	errorTypeBuildQuery     = "build_query"
	errorTypeQuery          = "query"
	errorTypeScan           = "scan"
	errorTypeExec           = "exec"
	errorTypeRowsAffected   = "rows_affected"
	errorTypeBeginTx        = "begin_tx"
	errorTypeCommitTx       = "commit_tx"
	errorTypeMigration      = "migration"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s Store) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
	args ...any,
) {

	allArgs := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, allArgs...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (s Store) logWarn(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (s Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDurationMetrics records duration metrics with context if the collector supports it.
func (s Store) recordDurationMetrics(ctx context.Context, operation string, duration time.Duration, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: operation,
		labelStatus:    status,
	}

	if contextualCollector, ok := s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

// recordErrorMetrics increments the database error counter if a collector is configured.
func (s Store) recordErrorMetrics(ctx context.Context, operation string, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: operation,
		labelStatus:    statusError,
		labelErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(store.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}
