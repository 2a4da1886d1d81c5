// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-judge/auth"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/store"
)

const testSecret = "middleware-test-secret"

// judgeMap is a JudgeLookup over a fixed set of judges
type judgeMap struct {
	judges map[string]models.Judge
	err    error
}

func (m judgeMap) GetJudge(_ context.Context, id string) (models.Judge, error) {
	if m.err != nil {
		return models.Judge{}, m.err
	}
	j, ok := m.judges[id]
	if !ok {
		return models.Judge{}, store.ErrNotFound
	}
	return j, nil
}

var registered = judgeMap{judges: map[string]models.Judge{
	"judge-1": {ID: "judge-1", Name: "Grace", Email: "grace@example.com"},
}}

func TestRequireAdmin(t *testing.T) {
	testCases := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{"valid key", "organizer", http.StatusOK},
		{"wrong key", "nope", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireAdmin("organizer", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/admin/projects", nil)
			if tc.key != "" {
				req.Header.Set("X-Admin-Key", tc.key)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
		})
	}
}

func TestRequireJudge(t *testing.T) {
	valid, err := auth.IssueJudgeToken("judge-1", "Grace", testSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	expired, err := auth.IssueJudgeToken("judge-1", "Grace", testSecret, time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	removed, err := auth.IssueJudgeToken("judge-2", "Alan", testSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	testCases := []struct {
		name       string
		header     string
		judges     judgeMap
		wantStatus int
	}{
		{"valid bearer", "Bearer " + valid, registered, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, registered, http.StatusOK},
		{"expired", "Bearer " + expired, registered, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", registered, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, registered, http.StatusUnauthorized},
		{"missing", "", registered, http.StatusUnauthorized},
		{"judge removed", "Bearer " + removed, registered, http.StatusUnauthorized},
		{"lookup failure", "Bearer " + valid, judgeMap{err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotID string
			handler := RequireJudge(testSecret, tc.judges, func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = JudgeIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/judge/next-pair", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus == http.StatusOK && gotID != "judge-1" {
				t.Errorf("Expected judge-1 in context, got '%s'", gotID)
			}
		})
	}
}

func TestJudgeIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := JudgeIDFromContext(req.Context()); ok {
		t.Error("Expected no judge ID on a bare context")
	}
}
