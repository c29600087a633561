package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"transitheat.dev/reachability/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewRequestLoggingMiddleware returns middleware that logs method, path,
// status, duration, and request id for every request. Intended as the
// outermost layer of the handler chain so it sees the final status code.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			// RequestIDMiddleware runs inside this layer and stores the id on
			// the inner request's context, so it is read back from the
			// response header it also sets.
			reqID := rec.Header().Get("X-Request-ID")
			logging.LogOperation(logger, "request_handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", reqID),
			)
		})
	}
}
