// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL or SQLite connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Organizer key checked against X-Admin-Key (required)
  - SessionSecret: HMAC secret for judge session tokens (required, 16+ chars)
  - SessionTTL: Judge session lifetime (default: 12h)
  - DefaultFinalists: Finalist count when none is requested (default: 5)
  - SignInRPS: Sign-in rate per client, burst is twice this (default: 5)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-admin-key        Organizer admin key
	-session-secret   Judge session secret
	-session-ttl      Judge session lifetime
	-finalists        Default finalist count
	-signin-rps       Sign-in rate limit

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	ADMIN_KEY         → -admin-key
	SESSION_SECRET    → -session-secret
	SESSION_TTL       → -session-ttl
	DEFAULT_FINALISTS → -finalists
	SIGNIN_RPS        → -signin-rps

CLI flags take precedence over environment variables.

# Validation

After defaults are applied the Config is checked with validator struct
tags. ParseFlags returns an error if DATABASE_URL, ADMIN_KEY or
SESSION_SECRET is missing, or if any value is out of range.
*/
package cliparse
