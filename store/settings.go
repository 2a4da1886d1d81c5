// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickly-judge/models"
)

const settingPhase = "phase"

// LoadPhase returns the persisted phase, or expo if none was saved.
func (s *Store) LoadPhase(ctx context.Context) (models.Phase, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = $1`, settingPhase).Scan(&value)
	if err == sql.ErrNoRows {
		return models.PhaseExpo, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load phase: %w", err)
	}

	p := models.Phase(value)
	if !p.Valid() {
		return "", fmt.Errorf("stored phase %q is not valid", value)
	}
	return p, nil
}

func (s *Store) SavePhase(ctx context.Context, p models.Phase) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value
	`, settingPhase, string(p))
	if err != nil {
		return fmt.Errorf("failed to save phase: %w", err)
	}
	return nil
}
