// Package app wires the service's shared dependencies into a single struct
// threaded through the REST API: configuration, the structured logger, the
// feed manager owning the transit graph, and the Prometheus registry.
package app

import (
	"log/slog"

	"transitheat.dev/reachability/internal/appconf"
	"transitheat.dev/reachability/internal/feed"
	"transitheat.dev/reachability/internal/metrics"
)

// Application holds every dependency an HTTP handler needs.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Feed    *feed.Manager
	Metrics *metrics.Registry
}
