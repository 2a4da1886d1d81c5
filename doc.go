// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Judge API server.

Quickly Judge runs hackathon judging in two phases. During the expo, judges
compare projects two at a time and projects are ranked by win rate. The top
projects become finalists, who are then scored by a panel against a
four-part rubric.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first:

	DATABASE_URL=judge.db ADMIN_KEY=... SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-key ... -session-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY (-admin-key): Organizer key sent as X-Admin-Key
  - SESSION_SECRET (-session-secret): Signing secret for judge sessions

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL, DEFAULT_FINALISTS, SIGNIN_RPS: see cliparse

# Architecture

  - judging: pair selection, win-rate and rubric ranking, finalist selection
  - store: SQL persistence
  - phase: server-held expo/panel phase with change notifications
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, auth guards, rate limiting, metrics
  - metrics: Prometheus collectors
  - models: Request/response types
  - auth: IDs, admin key check, judge session tokens
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

The judgectl command (cmd/judgectl) seeds and inspects the same database.
*/
package main
