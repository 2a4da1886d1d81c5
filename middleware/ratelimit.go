// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether client may make another request now
func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[client]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[client] = lim
	}
	l.mu.Unlock()

	return lim.Allow()
}

// Wrap rejects requests over the limit with 429
func (l *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r)
		if !l.Allow(ip) {
			slog.Warn("rate limited", "path", r.URL.Path, "remote", ip)
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}
		next(w, r)
	}
}
