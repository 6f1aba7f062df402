package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agentur-schein/props-backend/internal/common"
)

// Config describes how to derive a rate limit key and thresholds.
type Config struct {
	Key    func(*http.Request) string
	Window time.Duration
	Max    int
}

// AdminConfig limits the admin surface per client address. The admin panel
// has no login, so the limiter is what keeps bulk import/export endpoints
// from being hammered.
func AdminConfig(window time.Duration, max int) Config {
	return Config{
		Key:    func(r *http.Request) string { return "admin:" + common.ClientIP(r) },
		Window: window,
		Max:    max,
	}
}

// Handler enforces rate limits before delegating to the next handler.
type Handler struct {
	Limiter Limiter
	Config  Config
	OnError func(error)
}

// Middleware implements the http.Handler middleware interface. Limiter
// errors fail open; a Redis outage must not take the admin panel with it.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Config.Key == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, resetAt, err := h.Limiter.Allow(r.Context(), h.Config.Key(r), h.Config.Window, h.Config.Max)
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		h.writeQuotaHeaders(w, remaining, resetAt)
		if !allowed {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 0)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h Handler) writeQuotaHeaders(w http.ResponseWriter, remaining int, resetAt time.Time) {
	hdr := w.Header()
	hdr.Set("X-RateLimit-Limit", strconv.Itoa(max(h.Config.Max, 0)))
	hdr.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	hdr.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}
