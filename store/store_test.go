package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-judge/db"
	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.CreateSchema(conn))
	return New(conn)
}

func seedProjects(t *testing.T, s *Store, names ...string) []models.Project {
	t.Helper()

	var out []models.Project
	for i, name := range names {
		p, err := s.CreateProject(context.Background(), models.Project{Name: name, TableNumber: i + 1})
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func seedJudge(t *testing.T, s *Store, email string) models.Judge {
	t.Helper()
	j, err := s.CreateJudge(context.Background(), models.Judge{Name: "Judge " + email, Email: email})
	require.NoError(t, err)
	return j
}

func TestProjects_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateProject(ctx, models.Project{
		Name:        "Rover",
		Description: "Mars rover sim",
		TeamMembers: "Ann, Bo",
		TableNumber: 7,
		IsFinalist:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsFinalist, "new projects are never finalists")

	got, err := s.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	name := "Rover 2"
	table := 3
	updated, err := s.UpdateProject(ctx, created.ID, models.UpdateProjectRequest{Name: &name, TableNumber: &table})
	require.NoError(t, err)
	assert.Equal(t, "Rover 2", updated.Name)
	assert.Equal(t, 3, updated.TableNumber)
	assert.Equal(t, "Mars rover sim", updated.Description)

	unchanged, err := s.UpdateProject(ctx, created.ID, models.UpdateProjectRequest{})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	require.NoError(t, s.DeleteProject(ctx, created.ID))

	_, err = s.GetProject(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteProject(ctx, created.ID), ErrNotFound)

	_, err = s.UpdateProject(ctx, "missing", models.UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjects_Ordering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, p := range []models.Project{
		{Name: "C", TableNumber: 3},
		{Name: "A", TableNumber: 1},
		{Name: "B", TableNumber: 2},
	} {
		_, err := s.CreateProject(ctx, p)
		require.NoError(t, err)
	}

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "A", projects[0].Name)
	assert.Equal(t, "B", projects[1].Name)
	assert.Equal(t, "C", projects[2].Name)
}

func TestListProjects_Empty(t *testing.T) {
	s := newTestStore(t)

	projects, err := s.ListProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestJudges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	j := seedJudge(t, s, "  Grace@Example.com ")
	assert.Equal(t, "grace@example.com", j.Email)

	byEmail, err := s.GetJudgeByEmail(ctx, "GRACE@example.com")
	require.NoError(t, err)
	assert.Equal(t, j, byEmail)

	_, err = s.CreateJudge(ctx, models.Judge{Name: "Other", Email: "grace@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	judges, err := s.ListJudges(ctx)
	require.NoError(t, err)
	assert.Len(t, judges, 1)

	_, err = s.GetJudge(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetJudgeByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComparisons(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ps := seedProjects(t, s, "P1", "P2", "P3")
	j1 := seedJudge(t, s, "one@example.com")
	j2 := seedJudge(t, s, "two@example.com")

	winner := ps[0].ID
	first, err := s.AppendComparison(ctx, models.Comparison{
		JudgeID: j1.ID, ProjectAID: ps[0].ID, ProjectBID: ps[1].ID, WinnerID: &winner, Timestamp: 100,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = s.AppendComparison(ctx, models.Comparison{
		JudgeID: j1.ID, ProjectAID: ps[1].ID, ProjectBID: ps[2].ID, Timestamp: 200,
	})
	require.NoError(t, err)

	_, err = s.AppendComparison(ctx, models.Comparison{
		JudgeID: j2.ID, ProjectAID: ps[0].ID, ProjectBID: ps[2].ID, Timestamp: 150,
	})
	require.NoError(t, err)

	all, err := s.ListComparisons(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{100, 150, 200}, []int64{all[0].Timestamp, all[1].Timestamp, all[2].Timestamp})

	mine, err := s.ListComparisons(ctx, j1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.NotNil(t, mine[0].WinnerID)
	assert.Equal(t, ps[0].ID, *mine[0].WinnerID)
	assert.Nil(t, mine[1].WinnerID)
}

func TestAppendComparison_UnknownProject(t *testing.T) {
	s := newTestStore(t)

	ps := seedProjects(t, s, "P1")
	j := seedJudge(t, s, "fk@example.com")

	_, err := s.AppendComparison(context.Background(), models.Comparison{
		JudgeID: j.ID, ProjectAID: ps[0].ID, ProjectBID: "ghost", Timestamp: 1,
	})
	assert.Error(t, err)
}

func TestUpsertRubricScore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ps := seedProjects(t, s, "P1", "P2")
	j := seedJudge(t, s, "panel@example.com")

	first, updated, err := s.UpsertRubricScore(ctx, models.RubricScore{
		JudgeID: j.ID, ProjectID: ps[0].ID,
		Originality: 5, TechnicalComplexity: 6, Impact: 7, LearningCollaboration: 8,
		Comments: "solid", Timestamp: 10,
	})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NotEmpty(t, first.ID)

	second, updated, err := s.UpsertRubricScore(ctx, models.RubricScore{
		JudgeID: j.ID, ProjectID: ps[0].ID,
		Originality: 9, TechnicalComplexity: 9, Impact: 9, LearningCollaboration: 9,
		Comments: "revised", Timestamp: 20,
	})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, first.ID, second.ID, "overwrite keeps the row")
	assert.Equal(t, 9, second.Originality)
	assert.Equal(t, "revised", second.Comments)
	assert.Equal(t, int64(20), second.Timestamp)

	_, _, err = s.UpsertRubricScore(ctx, models.RubricScore{
		JudgeID: j.ID, ProjectID: ps[1].ID,
		Originality: 1, TechnicalComplexity: 1, Impact: 1, LearningCollaboration: 1,
		Timestamp: 30,
	})
	require.NoError(t, err)

	all, err := s.ListRubricScores(ctx, judging.RubricFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ps[1].ID, all[0].ProjectID, "newest first")

	forProject, err := s.ListRubricScores(ctx, judging.RubricFilter{JudgeID: j.ID, ProjectID: ps[0].ID})
	require.NoError(t, err)
	require.Len(t, forProject, 1)
	assert.Equal(t, second, forProject[0])
}

func TestUpsertRubricScore_RacingFirstSubmissions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ps := seedProjects(t, s, "P1")
	j := seedJudge(t, s, "panel@example.com")

	const n = 8
	var wg sync.WaitGroup
	ids := make([]string, n)
	flags := make([]bool, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			saved, updated, err := s.UpsertRubricScore(ctx, models.RubricScore{
				JudgeID: j.ID, ProjectID: ps[0].ID,
				Originality: i + 1, TechnicalComplexity: 5, Impact: 5, LearningCollaboration: 5,
				Timestamp: int64(i),
			})
			ids[i], flags[i], errs[i] = saved.ID, updated, err
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i], "every caller sees the surviving row")
		if !flags[i] {
			created++
		}
	}
	assert.Equal(t, 1, created, "exactly one caller creates the row")

	all, err := s.ListRubricScores(ctx, judging.RubricFilter{ProjectID: ps[0].ID})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, ids[0], all[0].ID)
}

func TestDeleteProject_Cascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ps := seedProjects(t, s, "P1", "P2", "P3")
	j := seedJudge(t, s, "cascade@example.com")

	winner := ps[1].ID
	_, err := s.AppendComparison(ctx, models.Comparison{JudgeID: j.ID, ProjectAID: ps[0].ID, ProjectBID: ps[1].ID, WinnerID: &winner, Timestamp: 1})
	require.NoError(t, err)
	_, err = s.AppendComparison(ctx, models.Comparison{JudgeID: j.ID, ProjectAID: ps[0].ID, ProjectBID: ps[2].ID, Timestamp: 2})
	require.NoError(t, err)
	_, _, err = s.UpsertRubricScore(ctx, models.RubricScore{
		JudgeID: j.ID, ProjectID: ps[1].ID,
		Originality: 5, TechnicalComplexity: 5, Impact: 5, LearningCollaboration: 5, Timestamp: 3,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(ctx, ps[1].ID))

	comparisons, err := s.ListComparisons(ctx, "")
	require.NoError(t, err)
	require.Len(t, comparisons, 1)
	assert.Equal(t, ps[2].ID, comparisons[0].ProjectBID)

	scores, err := s.ListRubricScores(ctx, judging.RubricFilter{})
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestDeleteJudge_Cascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ps := seedProjects(t, s, "P1", "P2")
	keep := seedJudge(t, s, "keep@example.com")
	drop := seedJudge(t, s, "drop@example.com")

	for _, j := range []models.Judge{keep, drop} {
		_, err := s.AppendComparison(ctx, models.Comparison{JudgeID: j.ID, ProjectAID: ps[0].ID, ProjectBID: ps[1].ID, Timestamp: 1})
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteJudge(ctx, drop.ID))
	assert.ErrorIs(t, s.DeleteJudge(ctx, drop.ID), ErrNotFound)

	comparisons, err := s.ListComparisons(ctx, "")
	require.NoError(t, err)
	require.Len(t, comparisons, 1)
	assert.Equal(t, keep.ID, comparisons[0].JudgeID)
}

func TestReplaceFinalists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ps := seedProjects(t, s, "P1", "P2", "P3")

	require.NoError(t, s.ReplaceFinalists(ctx, []string{ps[0].ID, ps[1].ID}))
	require.NoError(t, s.ReplaceFinalists(ctx, []string{ps[2].ID}))

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	flags := map[string]bool{}
	for _, p := range projects {
		flags[p.Name] = p.IsFinalist
	}
	assert.Equal(t, map[string]bool{"P1": false, "P2": false, "P3": true}, flags)

	err = s.ReplaceFinalists(ctx, []string{ps[0].ID, "ghost"})
	assert.True(t, errors.Is(err, ErrNotFound))

	projects, err = s.ListProjects(ctx)
	require.NoError(t, err)
	assert.True(t, projects[2].IsFinalist, "failed replacement rolls back")
	assert.False(t, projects[0].IsFinalist)
}

func TestPhaseSettings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p, err := s.LoadPhase(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseExpo, p)

	require.NoError(t, s.SavePhase(ctx, models.PhasePanel))
	require.NoError(t, s.SavePhase(ctx, models.PhasePanel))

	p, err = s.LoadPhase(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PhasePanel, p)
}
