package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/videorental/rental/shell"
)

// CommandWrapper provides observability instrumentation for any command handler.
// It wraps a core command handler and adds metrics and logging.
type CommandWrapper[C shell.Command, R shell.Result] struct {
	coreHandler      shell.CoreCommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewCommandWrapper creates a new observable wrapper around the core command handler.
func NewCommandWrapper[C shell.Command, R shell.Result](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {

	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the core handler and records the outcome.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	commandStart := time.Now()
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)
	duration := time.Since(commandStart)

	status := shell.ClassifyOutcome(err)
	labels := shell.BuildLabels(shell.LogAttrCommandType, w.commandType, status)

	shell.ReportInconsistency(
		ctx,
		w.logger,
		w.contextualLogger,
		w.metricsCollector,
		labels,
		result.Metadata(),
	)
	shell.RecordHandlerMetrics(
		ctx,
		w.metricsCollector,
		shell.CommandHandlerDurationMetric,
		shell.CommandHandlerCallsMetric,
		labels,
		duration,
	)

	if err != nil {
		shell.LogHandlerError(
			ctx,
			w.logger,
			w.contextualLogger,
			shell.LogMsgCommandFailed,
			shell.LogAttrCommandType,
			w.commandType,
			err,
		)

		return result, err
	}

	shell.LogHandlerSuccess(
		ctx,
		w.logger,
		w.contextualLogger,
		shell.LogMsgCommandCompleted,
		shell.LogAttrCommandType,
		w.commandType,
		duration,
	)

	return result, nil
}

// CommandOption defines a functional option for configuring CommandWrapper.
type CommandOption[C shell.Command, R shell.Result] func(*CommandWrapper[C, R]) error

// WithCommandMetrics sets the metrics collector for the CommandWrapper.
func WithCommandMetrics[C shell.Command, R shell.Result](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithCommandContextualLogging sets the contextual logger for the CommandWrapper.
func WithCommandContextualLogging[C shell.Command, R shell.Result](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithCommandLogging sets the basic logger for the CommandWrapper.
func WithCommandLogging[C shell.Command, R shell.Result](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.logger = logger
		return nil
	}
}
