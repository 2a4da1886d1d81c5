// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/testutil"
)

func TestGetRankings_Expo(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRankingsHandler(env.svc, env.phases, env.cfg)

	judge := testutil.CreateTestJudge(t, env.db, "J1", "j1@example.com")
	p1 := testutil.CreateTestProject(t, env.db, "P1", 1)
	p2 := testutil.CreateTestProject(t, env.db, "P2", 2)
	p3 := testutil.CreateTestProject(t, env.db, "P3", 3)
	p4 := testutil.CreateTestProject(t, env.db, "P4", 4)

	testutil.AddTestComparison(t, env.db, judge.ID, p1.ID, p2.ID, &p1.ID)
	testutil.AddTestComparison(t, env.db, judge.ID, p3.ID, p4.ID, &p3.ID)
	testutil.AddTestComparison(t, env.db, judge.ID, p3.ID, p1.ID, &p3.ID)

	w := httptest.NewRecorder()
	handler.GetRankings(w, testutil.MakeRequest("GET", "/admin/rankings", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RankingsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Phase != models.PhaseExpo {
		t.Errorf("Expected expo phase, got %s", resp.Phase)
	}

	want := []struct {
		name  string
		score float64
	}{
		{"P3", 1.0},
		{"P1", 0.5},
		{"P2", 0},
		{"P4", 0},
	}
	if len(resp.Rankings) != len(want) {
		t.Fatalf("Expected %d rankings, got %d", len(want), len(resp.Rankings))
	}
	for i, w := range want {
		got := resp.Rankings[i]
		if got.Project.Name != w.name || got.Score != w.score {
			t.Errorf("Rank %d: expected %s (%.2f), got %s (%.2f)", i+1, w.name, w.score, got.Project.Name, got.Score)
		}
		if got.Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, got.Rank)
		}
	}
}

func TestGetRankings_Panel(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRankingsHandler(env.svc, env.phases, env.cfg)

	judge := testutil.CreateTestJudge(t, env.db, "J1", "j1@example.com")
	low := testutil.CreateTestProject(t, env.db, "Low", 1)
	high := testutil.CreateTestProject(t, env.db, "High", 2)
	testutil.CreateTestProject(t, env.db, "Not a finalist", 3)
	testutil.MarkFinalists(t, env.db, low.ID, high.ID)
	env.setPhase(t, models.PhasePanel)

	ctx := context.Background()
	for _, s := range []models.RubricScore{
		{JudgeID: judge.ID, ProjectID: low.ID, Originality: 3, TechnicalComplexity: 3, Impact: 3, LearningCollaboration: 3},
		{JudgeID: judge.ID, ProjectID: high.ID, Originality: 9, TechnicalComplexity: 8, Impact: 9, LearningCollaboration: 8},
	} {
		if _, _, err := env.svc.SubmitRubric(ctx, s); err != nil {
			t.Fatalf("Failed to submit rubric: %v", err)
		}
	}

	w := httptest.NewRecorder()
	handler.GetRankings(w, testutil.MakeRequest("GET", "/admin/rankings", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RankingsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Phase != models.PhasePanel {
		t.Errorf("Expected panel phase, got %s", resp.Phase)
	}
	if len(resp.Rubric) != 2 {
		t.Fatalf("Expected only finalists ranked, got %d", len(resp.Rubric))
	}
	if resp.Rubric[0].Project.ID != high.ID {
		t.Errorf("Expected High first, got %s", resp.Rubric[0].Project.Name)
	}
	if resp.Rubric[0].Averages.Overall != 8.5 {
		t.Errorf("Expected overall 8.5, got %v", resp.Rubric[0].Averages.Overall)
	}
}

func TestGetProjectRubric(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRankingsHandler(env.svc, env.phases, env.cfg)

	j1 := testutil.CreateTestJudge(t, env.db, "J1", "j1@example.com")
	j2 := testutil.CreateTestJudge(t, env.db, "J2", "j2@example.com")
	project := testutil.CreateTestProject(t, env.db, "Rover", 1)
	testutil.MarkFinalists(t, env.db, project.ID)

	ctx := context.Background()
	for _, s := range []models.RubricScore{
		{JudgeID: j1.ID, ProjectID: project.ID, Originality: 8, TechnicalComplexity: 6, Impact: 7, LearningCollaboration: 9},
		{JudgeID: j2.ID, ProjectID: project.ID, Originality: 4, TechnicalComplexity: 8, Impact: 5, LearningCollaboration: 7},
	} {
		if _, _, err := env.svc.SubmitRubric(ctx, s); err != nil {
			t.Fatalf("Failed to submit rubric: %v", err)
		}
	}

	t.Run("averages", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/projects/"+project.ID+"/rubric", nil, nil)
		req.SetPathValue("id", project.ID)
		w := httptest.NewRecorder()

		handler.GetProjectRubric(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var avg models.RubricAverages
		testutil.AssertJSON(t, w, &avg)

		checks := []struct {
			field string
			got   float64
			want  float64
		}{
			{"originality", avg.Originality, 6},
			{"technical_complexity", avg.TechnicalComplexity, 7},
			{"impact", avg.Impact, 6},
			{"learning_collaboration", avg.LearningCollaboration, 8},
			{"overall", avg.Overall, 6.75},
		}
		for _, c := range checks {
			if math.Abs(c.got-c.want) > 1e-9 {
				t.Errorf("%s: expected %v, got %v", c.field, c.want, c.got)
			}
		}
		if avg.Count != 2 {
			t.Errorf("Expected count 2, got %d", avg.Count)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/projects/ghost/rubric", nil, nil)
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.GetProjectRubric(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSelectFinalists(t *testing.T) {
	env := newTestEnv(t)
	handler := NewRankingsHandler(env.svc, env.phases, env.cfg)

	judge := testutil.CreateTestJudge(t, env.db, "J1", "j1@example.com")
	var projects []models.Project
	for i := 1; i <= 5; i++ {
		projects = append(projects, testutil.CreateTestProject(t, env.db, "P"+string(rune('0'+i)), i))
	}
	// P5 > P4 > P3 by wins
	testutil.AddTestComparison(t, env.db, judge.ID, projects[4].ID, projects[0].ID, &projects[4].ID)
	testutil.AddTestComparison(t, env.db, judge.ID, projects[3].ID, projects[1].ID, &projects[3].ID)
	testutil.AddTestComparison(t, env.db, judge.ID, projects[2].ID, projects[3].ID, &projects[3].ID)

	tests := []struct {
		name          string
		body          any
		expectedCount int
	}{
		{"explicit count", map[string]int{"count": 2}, 2},
		{"default count from config", nil, env.cfg.DefaultFinalists},
		{"count larger than projects", map[string]int{"count": 50}, 5},
		{"zero clears", map[string]int{"count": 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.SelectFinalists(w, testutil.MakeRequest("POST", "/admin/finalists", tt.body, nil))
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.FinalistsResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Finalists) != tt.expectedCount {
				t.Errorf("Expected %d finalists, got %d", tt.expectedCount, len(resp.Finalists))
			}

			var flagged int
			if err := env.db.QueryRow("SELECT COUNT(*) FROM projects WHERE is_finalist = $1", true).Scan(&flagged); err != nil {
				t.Fatalf("Failed to count finalists: %v", err)
			}
			if flagged != tt.expectedCount {
				t.Errorf("Expected %d flagged projects, got %d", tt.expectedCount, flagged)
			}
		})
	}

	t.Run("negative count rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.SelectFinalists(w, testutil.MakeRequest("POST", "/admin/finalists", map[string]int{"count": -1}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
