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

const projectColumns = `id, name, description, team_members, table_number, is_finalist`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.TeamMembers, &p.TableNumber, &p.IsFinalist)
	return p, err
}

// ListProjects returns all projects ordered by table number, then ID.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		ORDER BY table_number, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to query project: %w", err)
	}
	return p, nil
}

// CreateProject inserts p with a new ID. New projects are never finalists.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = auth.NewID()
	p.IsFinalist = false

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, team_members, table_number, is_finalist)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Name, p.Description, p.TeamMembers, p.TableNumber, p.IsFinalist)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to insert project: %w", err)
	}

	return p, nil
}

// UpdateProject applies the non-nil fields of req and returns the result.
func (s *Store) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (models.Project, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.TeamMembers != nil {
		add("team_members", *req.TeamMembers)
	}
	if req.TableNumber != nil {
		add("table_number", *req.TableNumber)
	}
	if req.IsFinalist != nil {
		add("is_finalist", *req.IsFinalist)
	}

	if len(sets) == 0 {
		return s.GetProject(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return models.Project{}, fmt.Errorf("project %s: %w", id, err)
	}

	return s.GetProject(ctx, id)
}

// DeleteProject removes a project together with every comparison and rubric
// score that references it.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM comparisons
			WHERE project_a_id = $1 OR project_b_id = $1 OR winner_id = $1
		`, id); err != nil {
			return fmt.Errorf("failed to delete comparisons: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM rubric_scores WHERE project_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete rubric scores: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		if err := checkAffected(res); err != nil {
			return fmt.Errorf("project %s: %w", id, err)
		}
		return nil
	})
}

// ReplaceFinalists clears every finalist flag and sets it on ids, atomically.
func (s *Store) ReplaceFinalists(ctx context.Context, ids []string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE projects SET is_finalist = $1`, false); err != nil {
			return fmt.Errorf("failed to clear finalists: %w", err)
		}

		for _, id := range ids {
			res, err := tx.ExecContext(ctx, `UPDATE projects SET is_finalist = $1 WHERE id = $2`, true, id)
			if err != nil {
				return fmt.Errorf("failed to flag finalist: %w", err)
			}
			if err := checkAffected(res); err != nil {
				return fmt.Errorf("project %s: %w", id, err)
			}
		}
		return nil
	})
}
