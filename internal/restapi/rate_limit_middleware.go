package restapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles requests per client IP using a token-bucket
// limiter per client, reaped periodically so idle clients don't leak
// limiters forever.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int

	stopCleanup chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimitMiddleware builds a middleware allowing n requests per window
// per client IP, with bursts up to n.
func NewRateLimitMiddleware(n int, window time.Duration) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limiters:    make(map[string]*clientLimiter),
		rate:        rate.Limit(float64(n) / window.Seconds()),
		burst:       n,
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupStaleLimiters()

	return m
}

func (m *RateLimitMiddleware) cleanupStaleLimiters() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			for key, cl := range m.limiters {
				if time.Since(cl.lastSeen) > 3*time.Minute {
					delete(m.limiters, key)
				}
			}
			m.mu.Unlock()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *RateLimitMiddleware) limiterFor(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	cl, ok := m.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(m.rate, m.burst)}
		m.limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// Handler returns the http.Handler-wrapping middleware function.
func (m *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !m.limiterFor(key).Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Stop ends the background cleanup goroutine. Safe to call multiple times.
func (m *RateLimitMiddleware) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCleanup)
		m.wg.Wait()
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
