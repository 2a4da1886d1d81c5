// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judging

import (
	"sort"

	"github.com/danielhkuo/quickly-judge/models"
)

// ExposureCounts returns how many of the judge's comparisons each project
// appeared in, in either slot. Every project in projects has an entry.
func ExposureCounts(judgeID string, projects []models.Project, comparisons []models.Comparison) map[string]int {
	counts := make(map[string]int, len(projects))
	for _, p := range projects {
		counts[p.ID] = 0
	}
	for _, c := range comparisons {
		if c.JudgeID != judgeID {
			continue
		}
		if _, ok := counts[c.ProjectAID]; ok {
			counts[c.ProjectAID]++
		}
		if _, ok := counts[c.ProjectBID]; ok {
			counts[c.ProjectBID]++
		}
	}
	return counts
}

// NextPair proposes the next pair of projects for a judge. It returns nil
// when fewer than two projects exist.
//
// Projects are ordered by exposure count (ties keep the supplied order).
// The two least-exposed projects are preferred; if this judge has already
// compared them, the third least-exposed project is tried against each of
// them. When every candidate pair has been judged the first pair is
// returned anyway.
func NextPair(judgeID string, projects []models.Project, comparisons []models.Comparison) *models.Pair {
	pair, _ := selectPair(judgeID, projects, comparisons)
	return pair
}

// selectPair is NextPair plus whether the returned pair is new to the judge.
func selectPair(judgeID string, projects []models.Project, comparisons []models.Comparison) (*models.Pair, bool) {
	if len(projects) < 2 {
		return nil, false
	}

	exposure := ExposureCounts(judgeID, projects, comparisons)

	judged := make(map[string]bool)
	for _, c := range comparisons {
		if c.JudgeID == judgeID {
			judged[pairKey(c.ProjectAID, c.ProjectBID)] = true
		}
	}

	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return exposure[sorted[i].ID] < exposure[sorted[j].ID]
	})

	a, b := sorted[0], sorted[1]
	if !judged[pairKey(a.ID, b.ID)] {
		return &models.Pair{ProjectA: a, ProjectB: b}, true
	}

	if len(sorted) > 2 {
		c := sorted[2]
		if !judged[pairKey(a.ID, c.ID)] {
			return &models.Pair{ProjectA: a, ProjectB: c}, true
		}
		if !judged[pairKey(b.ID, c.ID)] {
			return &models.Pair{ProjectA: b, ProjectB: c}, true
		}
	}

	return &models.Pair{ProjectA: a, ProjectB: b}, false
}

// pairKey identifies an unordered pair.
func pairKey(x, y string) string {
	if x > y {
		x, y = y, x
	}
	return x + "|" + y
}
