// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package phase tracks whether the event is in the expo (pairwise) or panel
// (rubric) phase. The phase is held by the server, persisted through a
// Persister, and pushed to subscribers when it changes.
package phase
