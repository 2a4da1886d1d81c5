// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-judge/auth"
	"github.com/danielhkuo/quickly-judge/cliparse"
	"github.com/danielhkuo/quickly-judge/db"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/store"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      ":memory:",
		DatabaseType:     db.TypeSQLite,
		AdminKey:         "test-admin-key",
		SessionSecret:    "test-session-secret",
		SessionTTL:       time.Hour,
		DefaultFinalists: 3,
		SignInRPS:        1000,
	}
}

// AdminHeaders returns the headers organizer requests need
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Admin-Key": cfg.AdminKey}
}

// CreateTestProject inserts a project and returns it
func CreateTestProject(t *testing.T, conn *sql.DB, name string, table int) models.Project {
	t.Helper()

	p, err := store.New(conn).CreateProject(context.Background(), models.Project{
		Name:        name,
		Description: name + " description",
		TableNumber: table,
	})
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return p
}

// CreateTestJudge inserts a judge and returns it
func CreateTestJudge(t *testing.T, conn *sql.DB, name, email string) models.Judge {
	t.Helper()

	j, err := store.New(conn).CreateJudge(context.Background(), models.Judge{Name: name, Email: email})
	if err != nil {
		t.Fatalf("Failed to create test judge: %v", err)
	}
	return j
}

// JudgeHeaders issues a session token for judge and returns the bearer header
func JudgeHeaders(t *testing.T, cfg cliparse.Config, judge models.Judge) map[string]string {
	t.Helper()

	token, err := auth.IssueJudgeToken(judge.ID, judge.Name, cfg.SessionSecret, cfg.SessionTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue judge token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MarkFinalists flags exactly the given projects as finalists
func MarkFinalists(t *testing.T, conn *sql.DB, ids ...string) {
	t.Helper()

	if err := store.New(conn).ReplaceFinalists(context.Background(), ids); err != nil {
		t.Fatalf("Failed to mark finalists: %v", err)
	}
}

// AddTestComparison records a comparison directly, bypassing validation
func AddTestComparison(t *testing.T, conn *sql.DB, judgeID, a, b string, winner *string) {
	t.Helper()

	_, err := store.New(conn).AppendComparison(context.Background(), models.Comparison{
		JudgeID:    judgeID,
		ProjectAID: a,
		ProjectBID: b,
		WinnerID:   winner,
		Timestamp:  time.Now().UnixMilli(),
	})
	if err != nil {
		t.Fatalf("Failed to create test comparison: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var raw []byte
		if s, ok := body.(string); ok {
			raw = []byte(s)
		} else {
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
