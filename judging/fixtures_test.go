package judging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/danielhkuo/quickly-judge/models"
)

var errMissing = errors.New("missing")

func makeProjects(n int) []models.Project {
	projects := make([]models.Project, n)
	for i := range projects {
		projects[i] = models.Project{
			ID:          fmt.Sprintf("P%d", i+1),
			Name:        fmt.Sprintf("Project %d", i+1),
			TableNumber: i + 1,
		}
	}
	return projects
}

func ptr(s string) *string { return &s }

func comparison(judgeID, a, b string, winner *string) models.Comparison {
	return models.Comparison{JudgeID: judgeID, ProjectAID: a, ProjectBID: b, WinnerID: winner}
}

// memStore is an in-memory Store used by service tests.
type memStore struct {
	mu          sync.Mutex
	projects    []models.Project
	comparisons []models.Comparison
	scores      []models.RubricScore
	failList    error
}

func (m *memStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	out := make([]models.Project, len(m.projects))
	copy(out, m.projects)
	return out, nil
}

func (m *memStore) GetProject(ctx context.Context, id string) (models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, errMissing
}

func (m *memStore) ListComparisons(ctx context.Context, judgeID string) ([]models.Comparison, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comparison
	for _, c := range m.comparisons {
		if judgeID == "" || c.JudgeID == judgeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) AppendComparison(ctx context.Context, c models.Comparison) (models.Comparison, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = fmt.Sprintf("C%d", len(m.comparisons)+1)
	m.comparisons = append(m.comparisons, c)
	return c, nil
}

func (m *memStore) ListRubricScores(ctx context.Context, filter RubricFilter) ([]models.RubricScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RubricScore
	for _, s := range m.scores {
		if filter.JudgeID != "" && s.JudgeID != filter.JudgeID {
			continue
		}
		if filter.ProjectID != "" && s.ProjectID != filter.ProjectID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) UpsertRubricScore(ctx context.Context, s models.RubricScore) (models.RubricScore, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.scores {
		if existing.JudgeID == s.JudgeID && existing.ProjectID == s.ProjectID {
			s.ID = existing.ID
			m.scores[i] = s
			return s, true, nil
		}
	}
	s.ID = fmt.Sprintf("S%d", len(m.scores)+1)
	m.scores = append(m.scores, s)
	return s, false, nil
}

func (m *memStore) ReplaceFinalists(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	for i := range m.projects {
		m.projects[i].IsFinalist = selected[m.projects[i].ID]
	}
	return nil
}

func (m *memStore) finalistIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, p := range m.projects {
		if p.IsFinalist {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// countingRecorder tallies Recorder calls.
type countingRecorder struct {
	mu          sync.Mutex
	pairs       map[string]int
	comparisons int
	updates     int
	inserts     int
	finalists   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{pairs: make(map[string]int)}
}

func (r *countingRecorder) PairServed(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs[outcome]++
}

func (r *countingRecorder) ComparisonRecorded(bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comparisons++
}

func (r *countingRecorder) RubricSubmitted(updated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if updated {
		r.updates++
	} else {
		r.inserts++
	}
}

func (r *countingRecorder) FinalistsSelected(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalists = n
}
