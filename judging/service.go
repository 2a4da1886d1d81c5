// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judging

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-judge/models"
)

var tracer = otel.Tracer("github.com/danielhkuo/quickly-judge/judging")

// Service runs the pairing and ranking algorithms over snapshots read from
// a Store. It holds no mutable state of its own and is safe for concurrent use.
type Service struct {
	store    Store
	recorder Recorder
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, recorder: nopRecorder{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextPair proposes the next pair for judgeID, or nil if fewer than two
// projects exist.
func (s *Service) NextPair(ctx context.Context, judgeID string) (pair *models.Pair, err error) {
	ctx, span := tracer.Start(ctx, "judging.NextPair",
		trace.WithAttributes(attribute.String("judge.id", judgeID)))
	defer func() { endSpan(span, err) }()

	projects, comparisons, err := s.snapshot(ctx, judgeID)
	if err != nil {
		return nil, err
	}

	pair, fresh := selectPair(judgeID, projects, comparisons)
	switch {
	case pair == nil:
		s.recorder.PairServed(PairNone)
	case fresh:
		s.recorder.PairServed(PairFresh)
	default:
		s.recorder.PairServed(PairRepeat)
	}
	return pair, nil
}

// RankByWinRate ranks every project by win rate across all judges.
func (s *Service) RankByWinRate(ctx context.Context) (rankings []models.ProjectScore, err error) {
	ctx, span := tracer.Start(ctx, "judging.RankByWinRate")
	defer func() { endSpan(span, err) }()

	projects, comparisons, err := s.snapshot(ctx, "")
	if err != nil {
		return nil, err
	}
	return RankByWinRate(projects, comparisons), nil
}

// AverageRubric averages every rubric score recorded for projectID.
func (s *Service) AverageRubric(ctx context.Context, projectID string) (avg models.RubricAverages, err error) {
	ctx, span := tracer.Start(ctx, "judging.AverageRubric",
		trace.WithAttributes(attribute.String("project.id", projectID)))
	defer func() { endSpan(span, err) }()

	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return models.RubricAverages{}, fmt.Errorf("failed to load project: %w", err)
	}

	scores, err := s.store.ListRubricScores(ctx, RubricFilter{ProjectID: projectID})
	if err != nil {
		return models.RubricAverages{}, fmt.Errorf("failed to load rubric scores: %w", err)
	}
	return AverageRubric(projectID, scores), nil
}

// RankByRubric ranks the current finalists by overall rubric average.
func (s *Service) RankByRubric(ctx context.Context) (rankings []models.RubricRanking, err error) {
	ctx, span := tracer.Start(ctx, "judging.RankByRubric")
	defer func() { endSpan(span, err) }()

	var projects []models.Project
	var scores []models.RubricScore

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		all, err := s.store.ListProjects(gctx)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		for _, p := range all {
			if p.IsFinalist {
				projects = append(projects, p)
			}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = s.store.ListRubricScores(gctx, RubricFilter{})
		if err != nil {
			return fmt.Errorf("failed to load rubric scores: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return RankByRubric(projects, scores), nil
}

// SelectFinalists flags the top count projects by win rate as finalists
// and clears the flag on every other project.
func (s *Service) SelectFinalists(ctx context.Context, count int) (finalists []models.Project, err error) {
	ctx, span := tracer.Start(ctx, "judging.SelectFinalists",
		trace.WithAttributes(attribute.Int("finalists.requested", count)))
	defer func() { endSpan(span, err) }()

	projects, comparisons, err := s.snapshot(ctx, "")
	if err != nil {
		return nil, err
	}

	finalists = SelectFinalists(count, projects, comparisons)
	ids := make([]string, len(finalists))
	for i, p := range finalists {
		ids[i] = p.ID
	}

	if err := s.store.ReplaceFinalists(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to replace finalists: %w", err)
	}

	s.recorder.FinalistsSelected(len(finalists))
	return finalists, nil
}

// RecordComparison validates c and appends it. The timestamp is assigned here.
func (s *Service) RecordComparison(ctx context.Context, c models.Comparison) (saved models.Comparison, err error) {
	ctx, span := tracer.Start(ctx, "judging.RecordComparison",
		trace.WithAttributes(attribute.String("judge.id", c.JudgeID)))
	defer func() { endSpan(span, err) }()

	if err := ValidateComparison(c); err != nil {
		return models.Comparison{}, err
	}
	for _, id := range []string{c.ProjectAID, c.ProjectBID} {
		if _, err := s.store.GetProject(ctx, id); err != nil {
			return models.Comparison{}, fmt.Errorf("failed to load project %s: %w", id, err)
		}
	}

	c.Timestamp = s.now().UnixMilli()
	saved, err = s.store.AppendComparison(ctx, c)
	if err != nil {
		return models.Comparison{}, fmt.Errorf("failed to append comparison: %w", err)
	}

	s.recorder.ComparisonRecorded(saved.WinnerID != nil)
	return saved, nil
}

// SubmitRubric stores a judge's rubric score for a finalist. Resubmitting
// for the same project overwrites the earlier score.
func (s *Service) SubmitRubric(ctx context.Context, score models.RubricScore) (saved models.RubricScore, updated bool, err error) {
	ctx, span := tracer.Start(ctx, "judging.SubmitRubric",
		trace.WithAttributes(
			attribute.String("judge.id", score.JudgeID),
			attribute.String("project.id", score.ProjectID),
		))
	defer func() { endSpan(span, err) }()

	if err := ValidateRubric(score); err != nil {
		return models.RubricScore{}, false, err
	}

	project, err := s.store.GetProject(ctx, score.ProjectID)
	if err != nil {
		return models.RubricScore{}, false, fmt.Errorf("failed to load project: %w", err)
	}
	if !project.IsFinalist {
		return models.RubricScore{}, false, ErrNotFinalist
	}

	score.Timestamp = s.now().UnixMilli()
	saved, updated, err = s.store.UpsertRubricScore(ctx, score)
	if err != nil {
		return models.RubricScore{}, false, fmt.Errorf("failed to save rubric score: %w", err)
	}

	s.recorder.RubricSubmitted(updated)
	return saved, updated, nil
}

// snapshot loads all projects and the comparisons for judgeID (all
// comparisons when judgeID is empty) concurrently.
func (s *Service) snapshot(ctx context.Context, judgeID string) ([]models.Project, []models.Comparison, error) {
	var projects []models.Project
	var comparisons []models.Comparison

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.store.ListProjects(gctx)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		comparisons, err = s.store.ListComparisons(gctx, judgeID)
		if err != nil {
			return fmt.Errorf("failed to load comparisons: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return projects, comparisons, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
