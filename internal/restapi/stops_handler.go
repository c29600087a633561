package restapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"transitheat.dev/reachability/internal/models"
)

// stopsHandler serves GET /api/stops: every stop in the graph, optionally
// restricted to a bbox of minLat,minLon,maxLat,maxLon.
func (api *RestAPI) stopsHandler(w http.ResponseWriter, r *http.Request) {
	graph := api.Feed.Graph()

	var stops []models.Stop
	if bbox := r.URL.Query().Get("bbox"); bbox != "" {
		minLat, minLon, maxLat, maxLon, ok := parseBBox(bbox)
		if !ok {
			http.Error(w, "invalid bbox, expected minLat,minLon,maxLat,maxLon", http.StatusBadRequest)
			return
		}
		for _, s := range graph.SpatialIndex().WithinBBox(minLat, minLon, maxLat, maxLon) {
			stops = append(stops, models.Stop{ID: s.ID, Latitude: s.Coords.Latitude, Longitude: s.Coords.Longitude})
		}
	} else {
		for _, s := range graph.Stops() {
			stops = append(stops, models.Stop{ID: s.ID, Latitude: s.Coords.Latitude, Longitude: s.Coords.Longitude})
		}
	}

	if stops == nil {
		stops = []models.Stop{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stops); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func parseBBox(raw string) (minLat, minLon, maxLat, maxLon float64, ok bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, false
	}
	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		values[i] = v
	}
	return values[0], values[1], values[2], values[3], true
}
