package domain

import (
	"github.com/allisson/storefront/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	// Both cases share one error so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid email or password")

	// ErrInvalidSession is returned when a session token is missing, malformed, forged or expired.
	ErrInvalidSession = errors.Wrap(errors.ErrUnauthorized, "invalid session")
)
