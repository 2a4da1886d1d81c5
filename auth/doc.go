// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation, admin key checks, and judge sessions.

# IDs

Every project, judge, comparison and rubric score gets a random UUID:

	id := auth.NewID()

# Admin Key

Admin endpoints require the X-Admin-Key header to match the configured
ADMIN_KEY. The comparison is constant time:

	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey); err != nil {
		// 401
	}

# Judge Sessions

Judges sign in with their email and receive an HS256 JWT whose subject is
the judge ID:

	token, err := auth.IssueJudgeToken(judge.ID, judge.Name, cfg.SessionSecret, cfg.SessionTTL, time.Now())
	judgeID, err := auth.ParseJudgeToken(token, cfg.SessionSecret)

Tokens carry an expiry and are rejected once it passes.
*/
package auth
