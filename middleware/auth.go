// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-judge/auth"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/store"
)

type contextKey string

const judgeIDKey contextKey = "judge_id"

// RequireAdmin rejects requests whose X-Admin-Key header does not match adminKey
func RequireAdmin(adminKey string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), adminKey); err != nil {
			slog.Warn("admin auth failed", "path", r.URL.Path, "remote", GetClientIP(r))
			ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
			return
		}
		next(w, r)
	}
}

// JudgeLookup resolves the judge named by a session token
type JudgeLookup interface {
	GetJudge(ctx context.Context, id string) (models.Judge, error)
}

// RequireJudge validates the bearer session token, checks the judge is still
// registered and stores the judge ID in the request context
func RequireJudge(secret string, judges JudgeLookup, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Authorization: Bearer token required")
			return
		}

		judgeID, err := auth.ParseJudgeToken(token, secret)
		if err != nil {
			slog.Warn("judge auth failed", "path", r.URL.Path, "error", err)
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		if _, err := judges.GetJudge(r.Context(), judgeID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				slog.Warn("session for removed judge", "judge_id", judgeID, "path", r.URL.Path)
				ErrorResponse(w, http.StatusUnauthorized, "Judge no longer registered")
				return
			}
			slog.Error("failed to load judge", "judge_id", judgeID, "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Failed to load judge")
			return
		}

		next(w, r.WithContext(WithJudgeID(r.Context(), judgeID)))
	}
}

// WithJudgeID returns a context carrying judgeID
func WithJudgeID(ctx context.Context, judgeID string) context.Context {
	return context.WithValue(ctx, judgeIDKey, judgeID)
}

// JudgeIDFromContext returns the judge set by RequireJudge
func JudgeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(judgeIDKey).(string)
	return id, ok && id != ""
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
