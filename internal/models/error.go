package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Authentication errors. ErrAccountLocked is deliberately distinct from
	// ErrBadCredentials: a locked account short-circuits the password check
	// entirely and the client is told to wait, not to retry the password.
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrAccountLocked   = errors.New("account is temporarily locked")
	ErrAccountDisabled = errors.New("account is disabled")
)
