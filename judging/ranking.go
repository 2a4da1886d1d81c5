// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judging

import (
	"sort"

	"github.com/danielhkuo/quickly-judge/models"
)

// RankByWinRate scores every project by wins / appearances across all
// comparisons and returns them best first with 1-indexed ranks.
//
// A project that never appeared scores 0. Comparisons without a winner still
// count as an appearance for both projects. Equal scores are ordered by
// table number, then by project ID.
func RankByWinRate(projects []models.Project, comparisons []models.Comparison) []models.ProjectScore {
	wins := make(map[string]int, len(projects))
	appearances := make(map[string]int, len(projects))
	for _, p := range projects {
		wins[p.ID] = 0
		appearances[p.ID] = 0
	}

	for _, c := range comparisons {
		if c.WinnerID != nil {
			if _, ok := wins[*c.WinnerID]; ok {
				wins[*c.WinnerID]++
			}
		}
		if _, ok := appearances[c.ProjectAID]; ok {
			appearances[c.ProjectAID]++
		}
		if _, ok := appearances[c.ProjectBID]; ok {
			appearances[c.ProjectBID]++
		}
	}

	results := make([]models.ProjectScore, len(projects))
	for i, p := range projects {
		score := 0.0
		if appearances[p.ID] > 0 {
			score = float64(wins[p.ID]) / float64(appearances[p.ID])
		}
		results[i] = models.ProjectScore{
			Project:     p,
			Score:       score,
			Wins:        wins[p.ID],
			Appearances: appearances[p.ID],
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return projectLess(a.Project, b.Project)
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	return results
}

// SelectFinalists returns the top count projects by win rate, flagged as
// finalists. A count larger than the number of projects selects all of
// them; a count of zero or less selects none.
func SelectFinalists(count int, projects []models.Project, comparisons []models.Comparison) []models.Project {
	if count < 0 {
		count = 0
	}

	ranked := RankByWinRate(projects, comparisons)
	if count > len(ranked) {
		count = len(ranked)
	}

	finalists := make([]models.Project, 0, count)
	for _, r := range ranked[:count] {
		p := r.Project
		p.IsFinalist = true
		finalists = append(finalists, p)
	}
	return finalists
}

// projectLess is the deterministic tie-break shared by all rankings.
func projectLess(a, b models.Project) bool {
	if a.TableNumber != b.TableNumber {
		return a.TableNumber < b.TableNumber
	}
	return a.ID < b.ID
}
