package submissiondb

import "errors"

var (
	// ErrNotFound indicates the requested submission does not exist.
	ErrNotFound = errors.New("submission record not found")

	// ErrNoRowsAffected indicates an UPDATE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrDuplicate indicates the (form, user, slot) slot is already taken.
	ErrDuplicate = errors.New("submission slot already taken")
)
