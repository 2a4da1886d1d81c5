// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-judge/auth"
	"github.com/danielhkuo/quickly-judge/models"
)

func (s *Store) ListJudges(ctx context.Context) ([]models.Judge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email FROM judges ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query judges: %w", err)
	}
	defer rows.Close()

	judges := []models.Judge{}
	for rows.Next() {
		var j models.Judge
		if err := rows.Scan(&j.ID, &j.Name, &j.Email); err != nil {
			return nil, fmt.Errorf("failed to scan judge: %w", err)
		}
		judges = append(judges, j)
	}

	return judges, rows.Err()
}

func (s *Store) GetJudge(ctx context.Context, id string) (models.Judge, error) {
	return s.queryJudge(ctx, `SELECT id, name, email FROM judges WHERE id = $1`, id)
}

// GetJudgeByEmail looks a judge up by email, ignoring case and surrounding space.
func (s *Store) GetJudgeByEmail(ctx context.Context, email string) (models.Judge, error) {
	return s.queryJudge(ctx, `SELECT id, name, email FROM judges WHERE email = $1`, normalizeEmail(email))
}

func (s *Store) queryJudge(ctx context.Context, query, arg string) (models.Judge, error) {
	var j models.Judge
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&j.ID, &j.Name, &j.Email)
	if err == sql.ErrNoRows {
		return models.Judge{}, fmt.Errorf("judge %s: %w", arg, ErrNotFound)
	}
	if err != nil {
		return models.Judge{}, fmt.Errorf("failed to query judge: %w", err)
	}
	return j, nil
}

// CreateJudge inserts a judge. Emails are unique.
func (s *Store) CreateJudge(ctx context.Context, j models.Judge) (models.Judge, error) {
	j.ID = auth.NewID()
	j.Email = normalizeEmail(j.Email)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO judges (id, name, email) VALUES ($1, $2, $3)
	`, j.ID, j.Name, j.Email)
	if isUniqueViolation(err) {
		return models.Judge{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.Judge{}, fmt.Errorf("failed to insert judge: %w", err)
	}

	return j, nil
}

// DeleteJudge removes a judge and everything they recorded.
func (s *Store) DeleteJudge(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM comparisons WHERE judge_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete comparisons: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM rubric_scores WHERE judge_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete rubric scores: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM judges WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete judge: %w", err)
		}
		if err := checkAffected(res); err != nil {
			return fmt.Errorf("judge %s: %w", id, err)
		}
		return nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
