package restapi

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"transitheat.dev/reachability/internal/app"
	"transitheat.dev/reachability/internal/appconf"
	"transitheat.dev/reachability/internal/feed"
	"transitheat.dev/reachability/internal/geo"
	"transitheat.dev/reachability/internal/metrics"
	"transitheat.dev/reachability/internal/transit"
)

// createTestApi builds a RestAPI backed by a small in-memory graph, with no
// background feed reload loop, for handler tests.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	g, err := transit.Build(transit.Feed{
		Stops: []transit.FeedStop{
			{ID: "A", Coords: geo.Coordinates{Latitude: 60.17, Longitude: 24.94}, StopPoint: true},
			{ID: "B", Coords: geo.Coordinates{Latitude: 60.20, Longitude: 24.93}, StopPoint: true},
		},
		Calendars: map[string]transit.FeedCalendar{},
	})
	require.NoError(t, err)

	manager := feed.NewTestManager(g)

	application := &app.Application{
		Config:  appconf.Config{Port: 0, Env: appconf.Test, RateLimit: 1000, Verbose: false},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Feed:    manager,
		Metrics: metrics.NewRegistry(prometheus.NewRegistry()),
	}

	return NewRestAPI(application)
}
