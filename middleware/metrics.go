// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records request latency
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// WithMetrics reports each request under its route pattern, not the raw path
func WithMetrics(obs RequestObserver, route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next(rec, r)
		obs.ObserveRequest(r.Method, route, rec.status, time.Since(start))
	}
}
