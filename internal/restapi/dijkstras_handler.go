package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"transitheat.dev/reachability/internal/models"
	"transitheat.dev/reachability/internal/transit"
)

// dijkstrasHandler serves GET /api/stops/{stop_id}/dijkstras/{unix_ts}: the
// earliest-arrival duration in seconds from stop_id to every reachable
// stop, computed at the exact instant given.
func (api *RestAPI) dijkstrasHandler(w http.ResponseWriter, r *http.Request) {
	stopID := r.PathValue("stop_id")

	unixTS, err := strconv.ParseInt(r.PathValue("unix_ts"), 10, 64)
	if err != nil {
		http.Error(w, "invalid unix_ts", http.StatusBadRequest)
		return
	}
	instant := time.Unix(unixTS, 0).UTC()

	start := time.Now()
	table, err := api.Feed.ReachabilityExact(stopID, instant)
	if api.Metrics != nil {
		api.Metrics.ReachabilitySearchDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		var missing *transit.MissingStopError
		if errors.As(err, &missing) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make(models.DijkstraResponse, len(table))
	for id, d := range table {
		response[id] = d.Seconds()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
