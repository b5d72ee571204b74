// Command videostore runs the video rental store HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/videorental/httpapi"
	"github.com/AntonStoeckl/videorental/oteladapters"
	"github.com/AntonStoeckl/videorental/rental/lifecycle"
	"github.com/AntonStoeckl/videorental/rental/shell/config"
	"github.com/AntonStoeckl/videorental/store/sqlengine"
)

const (
	meterName       = "videostore"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storeOptions := []sqlengine.Option{sqlengine.WithLogger(logger)}
	lifecycleOptions := []lifecycle.Option{
		lifecycle.WithLoanPeriod(cfg.Rental.LoanPeriod),
		lifecycle.WithLogger(logger),
	}
	serverOptions := []httpapi.Option{httpapi.WithLogger(logger)}

	if cfg.OTel.Enabled {
		meters := oteladapters.NewMeterSetup()
		otel.SetMeterProvider(meters.Provider)
		defer func() {
			if shutdownErr := meters.Provider.Shutdown(context.Background()); shutdownErr != nil {
				logger.Warn("shutting down meter provider failed", "error", shutdownErr.Error())
			}
		}()

		collector := oteladapters.NewMetricsCollector(meters.Provider.Meter(meterName))
		contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())

		storeOptions = append(storeOptions, sqlengine.WithMetrics(collector), sqlengine.WithContextualLogger(contextualLogger))
		lifecycleOptions = append(lifecycleOptions, lifecycle.WithMetrics(collector), lifecycle.WithContextualLogger(contextualLogger))
		serverOptions = append(serverOptions, httpapi.WithMetricsReader(meters.Reader))
	}

	s, closeDB, err := config.NewStore(ctx, cfg.Database, storeOptions...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeDB(); closeErr != nil {
			logger.Warn("closing database failed", "error", closeErr.Error())
		}
	}()

	if err = s.Migrate(ctx); err != nil {
		return err
	}

	manager, err := lifecycle.NewManager(s, lifecycleOptions...)
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(s, manager, serverOptions...)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start(cfg.HTTP.Addr)
	}()

	logger.Info("video store started",
		"addr", cfg.HTTP.Addr,
		"database_driver", cfg.Database.Driver,
		"loan_period", cfg.Rental.LoanPeriod.String(),
		"otel_enabled", cfg.OTel.Enabled,
	)

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
		logger.Info("shutting down video store")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("video store stopped")

	return nil
}
