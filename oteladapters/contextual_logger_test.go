package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/videorental/oteladapters"
)

func Test_NewSlogBridgeLogger_DoesNotPanicWithoutProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("videostore")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "checkout", "video_id", "abc")
	})
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "video_id", "abc")
	logger.WarnContext(ctx, "warn message", "open_rentals", 2)
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message"`)
	assert.Contains(t, output, `"msg":"info message","video_id":"abc"`)
	assert.Contains(t, output, `"msg":"warn message","open_rentals":2`)
	assert.Contains(t, output, `"level":"ERROR","msg":"error message"`)
}
