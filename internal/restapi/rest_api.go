package restapi

import (
	"net/http"
	"time"

	"transitheat.dev/reachability/internal/app"
)

// RestAPI bundles the shared Application with the request-scoped middleware
// built from its configuration.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a RestAPI with a rate limiter sized from the
// application's configured requests-per-second.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(application.Config.RateLimit, time.Second),
	}
}

// Shutdown stops the rate limiter's background cleanup goroutine. Safe to
// call multiple times.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

// WithSecurityHeaders wraps handler with the non-CORS security headers
// middleware.
func (api *RestAPI) WithSecurityHeaders(handler http.Handler) http.Handler {
	return securityHeaders(handler)
}
