// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package judging implements pair selection and ranking for hackathon judging.

# Expo Phase

Judges compare two projects at a time. NextPair picks the two projects the
judge has seen least, with a one-step lookahead to avoid repeating a pair:

	pair := judging.NextPair(judgeID, projects, comparisons)

RankByWinRate scores each project by wins / appearances across all judges:

	rankings := judging.RankByWinRate(projects, comparisons)

SelectFinalists takes the top N of that ranking.

# Panel Phase

Finalists are scored on four 1-10 rubric fields. AverageRubric averages each
field and reports the mean of the four means as Overall. RankByRubric orders
finalists by Overall.

# Tie-breaking

Equal scores are ordered by table number, then by project ID.

# Service

Service wires the pure functions to a Store and is what handlers call:

	svc := judging.NewService(store, judging.WithRecorder(collector))
	pair, err := svc.NextPair(ctx, judgeID)
*/
package judging
