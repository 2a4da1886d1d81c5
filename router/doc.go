// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Judge API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Store:   store.New(db),
		Phases:  phases,
		Metrics: metrics.New(),
		Config:  cfg,
	})

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Organizer (requires X-Admin-Key):

	GET    /admin/projects              - List projects
	POST   /admin/projects              - Create project
	PUT    /admin/projects/{id}         - Edit project
	DELETE /admin/projects/{id}         - Delete project and its judgements
	GET    /admin/judges                - List judges
	POST   /admin/judges                - Register judge
	DELETE /admin/judges/{id}           - Remove judge and their judgements
	GET    /admin/rankings              - Win rate (expo) or rubric (panel) ranking
	GET    /admin/projects/{id}/rubric  - Rubric averages for one project
	POST   /admin/finalists             - Select top N by win rate
	PUT    /admin/phase                 - Switch phase

Judges:

	POST /judges/sign-in       - Email sign-in, returns session token (rate limited)
	GET  /judge/next-pair      - Next pair to compare
	POST /judge/comparisons    - Record a comparison
	GET  /judge/comparisons    - Own comparison history
	GET  /judge/finalists      - Finalists to score
	POST /judge/rubric-scores  - Score a finalist
	GET  /judge/rubric-scores  - Own rubric scores

Phase (public):

	GET /phase
	GET /phase/events - server-sent events

Every API route is wrapped with request logging and latency metrics keyed by
route pattern.
*/
package router
