// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-judge/auth"
	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/models"
)

// ListComparisons returns comparisons oldest first, optionally for one judge.
func (s *Store) ListComparisons(ctx context.Context, judgeID string) ([]models.Comparison, error) {
	query := `
		SELECT id, judge_id, project_a_id, project_b_id, winner_id, timestamp
		FROM comparisons`
	var args []any
	if judgeID != "" {
		query += ` WHERE judge_id = $1`
		args = append(args, judgeID)
	}
	query += ` ORDER BY timestamp, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()

	comparisons := []models.Comparison{}
	for rows.Next() {
		var c models.Comparison
		var winner sql.NullString
		if err := rows.Scan(&c.ID, &c.JudgeID, &c.ProjectAID, &c.ProjectBID, &winner, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		if winner.Valid {
			w := winner.String
			c.WinnerID = &w
		}
		comparisons = append(comparisons, c)
	}

	return comparisons, rows.Err()
}

// AppendComparison inserts c with a new ID.
func (s *Store) AppendComparison(ctx context.Context, c models.Comparison) (models.Comparison, error) {
	c.ID = auth.NewID()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comparisons (id, judge_id, project_a_id, project_b_id, winner_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.JudgeID, c.ProjectAID, c.ProjectBID, c.WinnerID, c.Timestamp)
	if err != nil {
		return models.Comparison{}, fmt.Errorf("failed to insert comparison: %w", err)
	}

	return c, nil
}

const rubricColumns = `id, judge_id, project_id, originality, technical_complexity,
	impact, learning_collaboration, comments, timestamp`

func scanRubric(row rowScanner) (models.RubricScore, error) {
	var r models.RubricScore
	err := row.Scan(&r.ID, &r.JudgeID, &r.ProjectID, &r.Originality, &r.TechnicalComplexity,
		&r.Impact, &r.LearningCollaboration, &r.Comments, &r.Timestamp)
	return r, err
}

// ListRubricScores returns scores newest first.
func (s *Store) ListRubricScores(ctx context.Context, filter judging.RubricFilter) ([]models.RubricScore, error) {
	var where []string
	var args []any
	if filter.JudgeID != "" {
		args = append(args, filter.JudgeID)
		where = append(where, fmt.Sprintf("judge_id = $%d", len(args)))
	}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		where = append(where, fmt.Sprintf("project_id = $%d", len(args)))
	}

	query := `SELECT ` + rubricColumns + ` FROM rubric_scores`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY timestamp DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rubric scores: %w", err)
	}
	defer rows.Close()

	scores := []models.RubricScore{}
	for rows.Next() {
		r, err := scanRubric(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rubric score: %w", err)
		}
		scores = append(scores, r)
	}

	return scores, rows.Err()
}

// UpsertRubricScore inserts or overwrites the (judge, project) score. The
// row keeps its original ID when overwritten, and updated reports whether
// it was.
func (s *Store) UpsertRubricScore(ctx context.Context, r models.RubricScore) (models.RubricScore, bool, error) {
	var saved models.RubricScore
	var updated bool

	r.ID = auth.NewID()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rubric_scores (`+rubricColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (judge_id, project_id) DO UPDATE SET
				originality = excluded.originality,
				technical_complexity = excluded.technical_complexity,
				impact = excluded.impact,
				learning_collaboration = excluded.learning_collaboration,
				comments = excluded.comments,
				timestamp = excluded.timestamp
		`, r.ID, r.JudgeID, r.ProjectID, r.Originality, r.TechnicalComplexity,
			r.Impact, r.LearningCollaboration, r.Comments, r.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to upsert rubric score: %w", err)
		}

		saved, err = scanRubric(tx.QueryRowContext(ctx, `
			SELECT `+rubricColumns+` FROM rubric_scores WHERE judge_id = $1 AND project_id = $2
		`, r.JudgeID, r.ProjectID))
		if err != nil {
			return fmt.Errorf("failed to reload rubric score: %w", err)
		}
		// The conflict clause leaves the id alone, so a different id means
		// another row already existed.
		updated = saved.ID != r.ID
		return nil
	})
	if err != nil {
		return models.RubricScore{}, false, err
	}

	return saved, updated, nil
}
