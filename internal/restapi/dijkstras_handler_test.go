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

func TestDijkstrasHandlerOriginIsZero(t *testing.T) {
	api := createTestApi(t)
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/stops/A/dijkstras/1704099600", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DijkstraResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["A"])
}

func TestDijkstrasHandlerUnknownOriginIs404(t *testing.T) {
	api := createTestApi(t)
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/stops/unknown/dijkstras/1704099600", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDijkstrasHandlerInvalidTimestamp(t *testing.T) {
	api := createTestApi(t)
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/stops/A/dijkstras/not-a-number", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
