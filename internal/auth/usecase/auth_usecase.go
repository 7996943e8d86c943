package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authService "github.com/allisson/storefront/internal/auth/service"
	apperrors "github.com/allisson/storefront/internal/errors"
	userDomain "github.com/allisson/storefront/internal/user/domain"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	sessionService  authService.SessionService
	logger          *slog.Logger

	// decoyDigest is verified against when the email is unknown so both failure
	// paths pay for one key derivation.
	decoyOnce   sync.Once
	decoyDigest string
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	sessionService authService.SessionService,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		sessionService:  sessionService,
		logger:          logger,
	}
}

// Login checks the email/password pair and issues a session for the account.
func (a *authUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := userDomain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "email and password are required")
	}

	user, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, err
		}
		a.passwordService.Verify(input.Password, a.decoy())
		return nil, authDomain.ErrInvalidCredentials
	}

	if !a.passwordService.Verify(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	session, err := a.sessionService.Issue(ctx, authDomain.Claims{
		Subject: user.ID.String(),
		Email:   user.Email,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue session")
	}

	return &LoginOutput{User: user, Session: session}, nil
}

// Authenticate verifies token and converts its claims into a Session.
func (a *authUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, authDomain.ErrInvalidSession
	}

	claims, ok := a.sessionService.Verify(ctx, token)
	if !ok {
		return nil, authDomain.ErrInvalidSession
	}

	userID, err := claims.UserID()
	if err != nil {
		a.logger.DebugContext(ctx, "session subject is not a user id", slog.String("subject", claims.Subject))
		return nil, authDomain.ErrInvalidSession
	}

	return &authDomain.Session{UserID: userID, Email: claims.Email}, nil
}

func (a *authUseCase) decoy() string {
	a.decoyOnce.Do(func() {
		digest, err := a.passwordService.Hash("storefront-decoy-password")
		if err != nil {
			a.logger.Warn("failed to compute decoy password digest", slog.Any("error", err))
			return
		}
		a.decoyDigest = digest
	})
	return a.decoyDigest
}
