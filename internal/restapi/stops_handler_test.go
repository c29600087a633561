package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitheat.dev/reachability/internal/models"
)

func TestStopsHandlerReturnsAllStops(t *testing.T) {
	api := createTestApi(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stops", nil)
	w := httptest.NewRecorder()

	api.stopsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stops []models.Stop
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stops))
	assert.Len(t, stops, 2)
}

func TestStopsHandlerBBoxFilters(t *testing.T) {
	api := createTestApi(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stops?bbox=60.0,24.0,60.18,25.0", nil)
	w := httptest.NewRecorder()

	api.stopsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stops []models.Stop
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stops))
	require.Len(t, stops, 1)
	assert.Equal(t, "A", stops[0].ID)
}

func TestStopsHandlerInvalidBBox(t *testing.T) {
	api := createTestApi(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stops?bbox=notanumber", nil)
	w := httptest.NewRecorder()

	api.stopsHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
