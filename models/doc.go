// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, validated with struct tags:

  - CreateProjectRequest / UpdateProjectRequest: project admin
  - CreateJudgeRequest: name, email
  - SignInRequest: email
  - SubmitComparisonRequest: project_a_id, project_b_id, winner_id
  - SubmitRubricRequest: project_id and four 1-10 sub-scores
  - SelectFinalistsRequest: count
  - SetPhaseRequest: phase

# Domain Types

  - Project: name, team, table number, finalist flag
  - Judge: name and unique email
  - Comparison: immutable pairwise judgement (winner may be nil)
  - RubricScore: one per (judge, project), overwritten on resubmission
  - Pair: the next two projects shown to a judge
  - ProjectScore: win-rate ranking row
  - RubricAverages / RubricRanking: panel-phase aggregates

# Constants

Phases:

	PhaseExpo  = "expo"
	PhasePanel = "panel"

Rubric bounds:

	RubricMin = 1
	RubricMax = 10
*/
package models
