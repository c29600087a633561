package restapi

import "net/http"

// healthHandler serves GET /healthz: a liveness probe with no
// authentication and no dependency on the feed being loaded.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
