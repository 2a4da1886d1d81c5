// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open accepts "postgres" (github.com/lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(ctx, db.TypeSQLite, "file:judging.db")

All queries use $n placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - projects: hackathon projects and the finalist flag
  - judges: judge name and unique email
  - comparisons: append-only pairwise results
  - rubric_scores: one row per (judge_id, project_id)
  - settings: key/value server settings such as the current phase

Comparisons and rubric scores cascade when their project or judge is deleted.
*/
package db
