package domain

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the identity bound into a session token.
type Claims struct {
	Subject string
	Email   string
}

// UserID parses the subject as a user identifier.
func (c Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// IssuedSession is the result of a successful login.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// VerifyFailure classifies why a session token was rejected.
// It is only used for logging and metrics; callers see a uniform "invalid" result.
type VerifyFailure string

const (
	// FailureNone means the token verified successfully.
	FailureNone VerifyFailure = ""

	// FailureMalformed means the token is structurally broken or carries unusable claims.
	FailureMalformed VerifyFailure = "malformed"

	// FailureForged means the signature does not match the header and payload.
	FailureForged VerifyFailure = "forged"

	// FailureExpired means the token's expiry is at or before the current time.
	FailureExpired VerifyFailure = "expired"
)

// Session is the authenticated identity recovered from a verified token.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// Owns reports whether the session subject is the recorded owner of a resource.
func (s *Session) Owns(ownerID uuid.UUID) bool {
	return s != nil && s.UserID == ownerID
}
