// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Judge API.

# Handler Types

Each handler is a struct built from the store, the judging service, the
phase manager and config as needed:

  - ProjectHandler: project CRUD for organizers
  - JudgeHandler: judge registration and email sign-in
  - ExpoHandler: next pair and comparison submission
  - PanelHandler: finalist listing and rubric scoring
  - RankingsHandler: dashboard rankings and finalist selection
  - PhaseHandler: read, change and stream the judging phase

	expo := handlers.NewExpoHandler(svc, st, phases)

# Phases

The event moves from expo to panel when an organizer sets the phase:

	PUT /admin/phase {"phase": "panel"}

Expo endpoints answer 409 during panel and vice versa. GET /phase/events
streams changes as server-sent events so judge clients can switch views
without polling.

# Expo Flow

	GET  /judge/next-pair   → NextPair ({"pair": null} with < 2 projects)
	POST /judge/comparisons → SubmitComparison (winner_id may be null)

# Panel Flow

	GET  /judge/finalists     → ListFinalists
	POST /judge/rubric-scores → SubmitRubric (201 new, 200 overwrite)

Organizer operations require the X-Admin-Key header. Judge operations
require a session token from POST /judges/sign-in.

# Errors

writeError maps domain errors to status codes: validation 400, missing
rows 404, duplicate email, non-finalist and wrong phase 409. Anything else
is logged and returned as 500.
*/
package handlers
