package restapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// withMiddleware applies rate limiting and compression to handler, the
// chain every data endpoint gets. CORS and security headers are applied
// globally in cmd/api's server construction, outside this mux.
func withMiddleware(api *RestAPI, handler http.HandlerFunc) http.Handler {
	compressed := CompressionMiddleware(handler)
	if api.rateLimiter == nil {
		return compressed
	}
	return api.rateLimiter.Handler()(compressed)
}

// SetRoutes registers every endpoint on mux.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /api/stops", withMiddleware(api, api.stopsHandler))
	mux.Handle("GET /api/stops/{stop_id}/dijkstras/{unix_ts}", withMiddleware(api, api.dijkstrasHandler))
	mux.Handle("GET /api/tiles/{stop_id}/{hour}/{day}/{zoom}/{x}/{y}/tile.webp", withMiddleware(api, api.tilesHandler))
}
