package service

import "errors"

// Domain errors surfaced to the presentation layer. All of them are
// recoverable by re-prompting the operator; none are fatal.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrMalformedSnapshot  = errors.New("malformed snapshot")
	ErrEmptyInvoice       = errors.New("invoice has no billable items")
)
