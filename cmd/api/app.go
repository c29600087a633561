package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"transitheat.dev/reachability/internal/app"
	"transitheat.dev/reachability/internal/appconf"
	"transitheat.dev/reachability/internal/feed"
	"transitheat.dev/reachability/internal/logging"
	"transitheat.dev/reachability/internal/metrics"
	"transitheat.dev/reachability/internal/restapi"
)

// The metrics registry is registered on the default Prometheus registerer,
// which accepts each collector once per process.
var (
	metricsOnce     sync.Once
	metricsRegistry *metrics.Registry
)

// BuildApplication creates and initializes the Application with all
// dependencies: the structured logger, the feed manager (which loads and
// builds the initial transit graph), and the metrics registry.
func BuildApplication(cfg appconf.Config, feedCfg feed.Config) (*app.Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	feedManager, err := feed.NewManager(feedCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize feed manager: %w", err)
	}

	metricsOnce.Do(func() {
		metricsRegistry = metrics.NewRegistry(prometheus.DefaultRegisterer)
	})

	coreApp := &app.Application{
		Config:  cfg,
		Logger:  logger,
		Feed:    feedManager,
		Metrics: metricsRegistry,
	}

	return coreApp, nil
}

// CreateServer creates and configures the HTTP server with routes and
// middleware. Composition order, outermost first: request logging, security
// headers, CORS, then the route mux.
func CreateServer(coreApp *app.Application, cfg appconf.Config) *http.Server {
	api := restapi.NewRestAPI(coreApp)

	mux := http.NewServeMux()
	api.SetRoutes(mux)

	corsHandler := restapi.CORSMiddleware(mux)
	securedHandler := api.WithSecurityHeaders(corsHandler)

	requestLogger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	requestLogMiddleware := restapi.NewRequestLoggingMiddleware(requestLogger)
	handler := requestLogMiddleware(restapi.RequestIDMiddleware(securedHandler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return srv
}

// Run manages the server lifecycle with graceful shutdown: starts the
// server in a goroutine, waits for SIGINT/SIGTERM, and shuts down with a
// 30-second timeout.
func Run(srv *http.Server, feedManager *feed.Manager, logger *slog.Logger) error {
	logger.Info("starting server", "addr", srv.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if feedManager != nil {
		feedManager.Shutdown()
	}

	logger.Info("server exited")
	return nil
}
