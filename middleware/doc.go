// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key.

# Authentication

Organizer routes require the configured admin key:

	mux.HandleFunc("GET /admin/projects", middleware.RequireAdmin(cfg.AdminKey, h.List))

Judge routes require a session token issued at sign-in
(Authorization: Bearer <token>) naming a judge that is still registered:

	mux.HandleFunc("GET /judge/next-pair", middleware.RequireJudge(cfg.SessionSecret, st, h.NextPair))

The judge ID is available to handlers:

	judgeID, ok := middleware.JudgeIDFromContext(r.Context())

# Rate Limiting

RateLimiter keeps a token bucket per client IP and answers 429 when it is
empty:

	limiter := middleware.NewRateLimiter(cfg.SignInRPS, cfg.SignInBurst())
	mux.HandleFunc("POST /judges/sign-in", limiter.Wrap(h.SignIn))

# Metrics

WithMetrics reports latency per route pattern to a RequestObserver.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for rate limiting and log lines.
*/
package middleware
