// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package judging

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/quickly-judge/models"
)

// AverageRubric averages each rubric field over the project's scores.
// Scores for other projects are ignored. Overall is the mean of the four
// field means. With no scores every field is 0.
func AverageRubric(projectID string, scores []models.RubricScore) models.RubricAverages {
	avg := models.RubricAverages{ProjectID: projectID}

	var originality, technical, impact, learning []float64
	for _, s := range scores {
		if s.ProjectID != projectID {
			continue
		}
		originality = append(originality, float64(s.Originality))
		technical = append(technical, float64(s.TechnicalComplexity))
		impact = append(impact, float64(s.Impact))
		learning = append(learning, float64(s.LearningCollaboration))
	}

	avg.Count = len(originality)
	if avg.Count == 0 {
		return avg
	}

	avg.Originality = mean(originality)
	avg.TechnicalComplexity = mean(technical)
	avg.Impact = mean(impact)
	avg.LearningCollaboration = mean(learning)
	avg.Overall = mean([]float64{
		avg.Originality,
		avg.TechnicalComplexity,
		avg.Impact,
		avg.LearningCollaboration,
	})

	return avg
}

// RankByRubric orders projects by their overall rubric average, best first.
func RankByRubric(projects []models.Project, scores []models.RubricScore) []models.RubricRanking {
	byProject := make(map[string][]models.RubricScore)
	for _, s := range scores {
		byProject[s.ProjectID] = append(byProject[s.ProjectID], s)
	}

	results := make([]models.RubricRanking, len(projects))
	for i, p := range projects {
		results[i] = models.RubricRanking{
			Project:  p,
			Averages: AverageRubric(p.ID, byProject[p.ID]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Averages.Overall != b.Averages.Overall {
			return a.Averages.Overall > b.Averages.Overall
		}
		return projectLess(a.Project, b.Project)
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	return results
}

// ValidateRubric checks every sub-score is within RubricMin..RubricMax.
func ValidateRubric(s models.RubricScore) error {
	fields := []struct {
		name  string
		value int
	}{
		{"originality", s.Originality},
		{"technical_complexity", s.TechnicalComplexity},
		{"impact", s.Impact},
		{"learning_collaboration", s.LearningCollaboration},
	}
	for _, f := range fields {
		if f.value < models.RubricMin || f.value > models.RubricMax {
			return fmt.Errorf("%w: %s = %d", ErrScoreOutOfRange, f.name, f.value)
		}
	}
	return nil
}

// mean calculates the arithmetic mean
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
