// Package service implements the credential and session primitives of the auth module.
//
// Both services are stateless values built once at startup from immutable
// configuration and are safe for concurrent use.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
)

// PasswordService turns plaintext passwords into storable digests and checks
// candidates against them.
type PasswordService interface {
	// Hash derives a salted digest from password. A fresh random salt is used on
	// every call, so hashing the same password twice yields different digests.
	// Password policy (length, emptiness) is the caller's concern.
	Hash(password string) (string, error)

	// Verify reports whether password matches digest. Malformed or foreign digests
	// never produce an error; they simply do not match.
	Verify(password, digest string) bool
}

// SessionService issues and verifies stateless, HMAC-signed session tokens.
type SessionService interface {
	// Issue signs a token binding claims to an expiry of now + TTL.
	Issue(ctx context.Context, claims authDomain.Claims) (*authDomain.IssuedSession, error)

	// Verify checks integrity, expiry and claim shape of token. Any failure yields
	// (Claims{}, false) without revealing why.
	Verify(ctx context.Context, token string) (authDomain.Claims, bool)

	// TTL returns the validity window applied to issued tokens.
	TTL() time.Duration
}

// Clock provides the current time. Injected so expiry checks can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap the session secret.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for gocloud.dev/secrets key URIs.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
