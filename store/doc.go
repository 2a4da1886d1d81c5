// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements persistence on top of database/sql.

Store satisfies judging.Store and adds the admin operations the HTTP layer
needs (project and judge CRUD, phase settings). Queries use $n placeholders,
which both PostgreSQL and SQLite accept.

Deleting a project or judge removes the comparisons and rubric scores that
reference it inside one transaction. ReplaceFinalists is likewise atomic.

Errors:

	ErrNotFound        row does not exist
	ErrDuplicateEmail  judge email already registered
*/
package store
