package formdb

import "errors"

var (
	// ErrNotFound indicates the requested form does not exist.
	ErrNotFound = errors.New("form not found")

	// ErrNoRowsAffected indicates an UPDATE/DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
