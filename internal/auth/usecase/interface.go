// Package usecase implements login and session authentication.
package usecase

import (
	"context"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	userDomain "github.com/allisson/storefront/internal/user/domain"
)

// UserRepository is the subset of user persistence needed to log in.
type UserRepository interface {
	// GetByEmail returns ErrUserNotFound when no account uses the email.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// LoginInput carries the credentials submitted to POST /v1/auth/login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is the account that logged in together with its new session token.
type LoginOutput struct {
	User    *userDomain.User
	Session *authDomain.IssuedSession
}

// AuthUseCase defines the authentication operations exposed to the HTTP layer.
type AuthUseCase interface {
	// Login checks the credentials and issues a session token.
	//
	// An unknown email and a wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Authenticate verifies a session token and returns the identity it carries.
	// Missing, malformed, forged and expired tokens all yield ErrInvalidSession.
	Authenticate(ctx context.Context, token string) (*authDomain.Session, error)
}
