package restapi

import (
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTilesHandlerReturnsPNG(t *testing.T) {
	api := createTestApi(t)
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/tiles/A/9/Mon/10/512/512/tile.webp", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestTilesHandlerUnknownStopIs404(t *testing.T) {
	api := createTestApi(t)
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/tiles/unknown/9/Mon/10/512/512/tile.webp", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTilesHandlerInvalidZoom(t *testing.T) {
	api := createTestApi(t)
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/tiles/A/9/Mon/99/512/512/tile.webp", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveHourDaySameWeekday(t *testing.T) {
	now := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC) // a Monday
	instant, err := resolveHourDay(9, "Mon", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), instant)
}

func TestResolveHourDayInvalidHour(t *testing.T) {
	_, err := resolveHourDay(24, "Mon", time.Now())
	assert.Error(t, err)
}

func TestResolveHourDayInvalidDay(t *testing.T) {
	_, err := resolveHourDay(9, "Funday", time.Now())
	assert.Error(t, err)
}
