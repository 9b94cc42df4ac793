package services

import "errors"

// Sentinel errors let handlers pick a status code with errors.Is instead of
// matching message strings.
var (
	// ErrDuplicateUsername is returned when registering a username that is
	// already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials collapses unknown-user and wrong-password so
	// callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when a record is absent. Owner-scoped deletes
	// also return it on an ownership mismatch; the two cases are
	// indistinguishable to the caller.
	ErrNotFound = errors.New("record not found")
)
