// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judging

import (
	"context"

	"github.com/danielhkuo/quickly-judge/models"
)

// RubricFilter narrows a rubric score listing. Empty fields match everything.
type RubricFilter struct {
	JudgeID   string
	ProjectID string
}

// Store is the persistence the judging service needs.
type Store interface {
	// ListProjects returns every project in a stable order.
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)

	// ListComparisons returns all comparisons, or only judgeID's when non-empty.
	ListComparisons(ctx context.Context, judgeID string) ([]models.Comparison, error)
	AppendComparison(ctx context.Context, c models.Comparison) (models.Comparison, error)

	ListRubricScores(ctx context.Context, filter RubricFilter) ([]models.RubricScore, error)
	// UpsertRubricScore stores s keyed by (judge, project) and reports
	// whether an existing row was overwritten.
	UpsertRubricScore(ctx context.Context, s models.RubricScore) (models.RubricScore, bool, error)

	// ReplaceFinalists flags exactly ids as finalists in one transaction.
	ReplaceFinalists(ctx context.Context, ids []string) error
}

// Recorder receives judging outcomes for metrics.
type Recorder interface {
	PairServed(outcome string)
	ComparisonRecorded(hasWinner bool)
	RubricSubmitted(updated bool)
	FinalistsSelected(count int)
}

// Pair outcomes passed to Recorder.PairServed.
const (
	PairFresh  = "fresh"
	PairRepeat = "repeat"
	PairNone   = "none"
)

type nopRecorder struct{}

func (nopRecorder) PairServed(string)       {}
func (nopRecorder) ComparisonRecorded(bool) {}
func (nopRecorder) RubricSubmitted(bool)    {}
func (nopRecorder) FinalistsSelected(int)   {}
