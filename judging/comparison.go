// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judging

import "github.com/danielhkuo/quickly-judge/models"

// ValidateComparison rejects a comparison before it is recorded if both
// slots hold the same project or the winner is not one of them.
func ValidateComparison(c models.Comparison) error {
	if c.ProjectAID == c.ProjectBID {
		return ErrSameProject
	}
	if c.WinnerID != nil && *c.WinnerID != c.ProjectAID && *c.WinnerID != c.ProjectBID {
		return ErrInvalidWinner
	}
	return nil
}
