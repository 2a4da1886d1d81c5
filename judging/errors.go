// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judging

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWinner is returned when a winner is neither project of the pair.
	ErrInvalidWinner = errors.New("winner must be one of the compared projects")

	// ErrSameProject is returned when both slots of a comparison hold the same project.
	ErrSameProject = errors.New("a project cannot be compared with itself")

	// ErrScoreOutOfRange is returned when a rubric sub-score falls outside 1-10.
	ErrScoreOutOfRange = errors.New("rubric score out of range")

	// ErrNotFinalist is returned when a rubric score targets a non-finalist project.
	ErrNotFinalist = errors.New("project is not a finalist")
)

// ValidationError reports a struct-tag validation failure for an entity.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
