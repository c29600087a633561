package restapi

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"transitheat.dev/reachability/internal/geo"
	"transitheat.dev/reachability/internal/gtfstime"
	"transitheat.dev/reachability/internal/heatmap"
	"transitheat.dev/reachability/internal/transit"
)

var dayAbbreviations = map[string]gtfstime.Weekday{
	"Mon": gtfstime.Monday,
	"Tue": gtfstime.Tuesday,
	"Wed": gtfstime.Wednesday,
	"Thu": gtfstime.Thursday,
	"Fri": gtfstime.Friday,
	"Sat": gtfstime.Saturday,
	"Sun": gtfstime.Sunday,
}

// resolveHourDay combines an hour-of-day and a three-letter weekday
// abbreviation with today's date (UTC) into a query instant: the first
// occurrence of that weekday on or after today (today itself when it
// matches, even if the hour has passed), at the given hour.
func resolveHourDay(hour int, day string, now time.Time) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour must be 0-23, got %d", hour)
	}
	target, ok := dayAbbreviations[day]
	if !ok {
		return time.Time{}, fmt.Errorf("day must be a three-letter weekday abbreviation, got %q", day)
	}

	today := gtfstime.WeekdayOf(now)
	offset := (int(target) - int(today) + 7) % 7
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return midnight.Add(time.Duration(hour) * time.Hour), nil
}

// tilesHandler serves GET /api/tiles/{stop_id}/{hour}/{day}/{zoom}/{x}/{y}/tile.webp:
// a grayscale PNG rasterizing the reachability table from stop_id at the
// resolved (hour, day) instant.
func (api *RestAPI) tilesHandler(w http.ResponseWriter, r *http.Request) {
	stopID := r.PathValue("stop_id")

	hour, err := strconv.Atoi(r.PathValue("hour"))
	if err != nil {
		http.Error(w, "invalid hour", http.StatusBadRequest)
		return
	}
	day := r.PathValue("day")

	instant, err := resolveHourDay(hour, day, time.Now().UTC())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	zoom, zErr := strconv.Atoi(r.PathValue("zoom"))
	x, xErr := strconv.Atoi(r.PathValue("x"))
	y, yErr := strconv.Atoi(r.PathValue("y"))
	if zErr != nil || xErr != nil || yErr != nil {
		http.Error(w, "invalid tile address", http.StatusBadRequest)
		return
	}

	tile, err := geo.NewTileAddress(zoom, x, y)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	table, err := api.Feed.Reachability(stopID, instant)
	if err != nil {
		var missing *transit.MissingStopError
		if errors.As(err, &missing) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderStart := time.Now()
	img, stats, err := heatmap.Render(api.Feed.Graph(), table, tile)
	if api.Metrics != nil {
		api.Metrics.TileRenderDuration.Observe(time.Since(renderStart).Seconds())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, "failed to encode tile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Max-Time-Ms", fmt.Sprintf("%d", stats.MaxTimeElapsed.Milliseconds()))
	w.Header().Set("X-Render-Draw-Ms", fmt.Sprintf("%d", stats.DrawElapsed.Milliseconds()))
	CacheControlMiddleware(300, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	})).ServeHTTP(w, r)
}
