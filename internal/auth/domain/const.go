// Package domain defines the session and credential types of the authentication module.
//
// Sessions are stateless: a signed token binds a user identity to an expiry and is
// never persisted server-side. There is no revocation; a token stays valid until it
// expires even after logout or a password change.
package domain

import "time"

const (
	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "auth-token"

	// DefaultSessionTTL is the validity window of an issued session token (7 days).
	DefaultSessionTTL = 7 * 24 * time.Hour

	// SessionSigningAlgorithm is the only token algorithm issued and accepted.
	SessionSigningAlgorithm = "HS256"
)
