package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authService "github.com/allisson/storefront/internal/auth/service"
	apperrors "github.com/allisson/storefront/internal/errors"
	userDomain "github.com/allisson/storefront/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockPasswordService is a mock implementation of authService.PasswordService
type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) Verify(password, digest string) bool {
	args := m.Called(password, digest)
	return args.Bool(0)
}

// MockSessionService is a mock implementation of authService.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Issue(
	ctx context.Context,
	claims authDomain.Claims,
) (*authDomain.IssuedSession, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedSession), args.Error(1)
}

func (m *MockSessionService) Verify(ctx context.Context, token string) (authDomain.Claims, bool) {
	args := m.Called(ctx, token)
	return args.Get(0).(authDomain.Claims), args.Bool(1)
}

func (m *MockSessionService) TTL() time.Duration {
	return authDomain.DefaultSessionTTL
}

type authMocks struct {
	userRepo        *MockUserRepository
	passwordService *MockPasswordService
	sessionService  *MockSessionService
}

func newAuthUseCase(t *testing.T) (AuthUseCase, authMocks) {
	t.Helper()

	m := authMocks{
		userRepo:        &MockUserRepository{},
		passwordService: &MockPasswordService{},
		sessionService:  &MockSessionService{},
	}
	t.Cleanup(func() {
		m.userRepo.AssertExpectations(t)
		m.passwordService.AssertExpectations(t)
		m.sessionService.AssertExpectations(t)
	})

	uc := NewAuthUseCase(m.userRepo, m.passwordService, m.sessionService, slog.New(slog.DiscardHandler))
	return uc, m
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        "john@example.com",
		PasswordHash: "salt:key",
	}

	t.Run("Success", func(t *testing.T) {
		uc, m := newAuthUseCase(t)
		issued := &authDomain.IssuedSession{Token: "a.b.c", ExpiresAt: time.Now().Add(time.Hour)}

		m.userRepo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		m.passwordService.On("Verify", "secret1", "salt:key").Return(true).Once()
		m.sessionService.On("Issue", ctx, authDomain.Claims{
			Subject: user.ID.String(),
			Email:   "john@example.com",
		}).Return(issued, nil).Once()

		output, err := uc.Login(ctx, LoginInput{Email: " John@Example.COM", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, user, output.User)
		assert.Equal(t, issued, output.Session)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		uc, m := newAuthUseCase(t)

		m.userRepo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		m.passwordService.On("Verify", "wrong", "salt:key").Return(false).Once()

		output, err := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "wrong"})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		m.sessionService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		uc, m := newAuthUseCase(t)

		m.userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, userDomain.ErrUserNotFound).Once()
		m.passwordService.On("Hash", mock.Anything).Return("decoy:digest", nil).Once()
		m.passwordService.On("Verify", "secret1", "decoy:digest").Return(false).Once()

		output, err := uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "secret1"})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_UnknownEmailAndWrongPasswordAreIndistinguishable", func(t *testing.T) {
		uc, m := newAuthUseCase(t)

		m.userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, userDomain.ErrUserNotFound).Once()
		m.userRepo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		m.passwordService.On("Hash", mock.Anything).Return("decoy:digest", nil).Once()
		m.passwordService.On("Verify", mock.Anything, mock.Anything).Return(false).Twice()

		_, unknownErr := uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "secret1"})
		_, wrongErr := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "secret1"})

		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		uc, _ := newAuthUseCase(t)

		_, err := uc.Login(ctx, LoginInput{Email: "", Password: "secret1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		_, err = uc.Login(ctx, LoginInput{Email: "john@example.com", Password: ""})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		uc, m := newAuthUseCase(t)
		dbErr := errors.New("connection refused")

		m.userRepo.On("GetByEmail", ctx, "john@example.com").Return(nil, dbErr).Once()

		_, err := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "secret1"})

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_IssueFailure", func(t *testing.T) {
		uc, m := newAuthUseCase(t)

		m.userRepo.On("GetByEmail", ctx, "john@example.com").Return(user, nil).Once()
		m.passwordService.On("Verify", "secret1", "salt:key").Return(true).Once()
		m.sessionService.On("Issue", ctx, mock.Anything).Return(nil, errors.New("sign failed")).Once()

		_, err := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "secret1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to issue session")
	})
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		uc, m := newAuthUseCase(t)
		m.sessionService.On("Verify", ctx, "a.b.c").
			Return(authDomain.Claims{Subject: userID.String(), Email: "john@example.com"}, true).Once()

		session, err := uc.Authenticate(ctx, "a.b.c")

		require.NoError(t, err)
		assert.Equal(t, userID, session.UserID)
		assert.Equal(t, "john@example.com", session.Email)
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		uc, _ := newAuthUseCase(t)

		_, err := uc.Authenticate(ctx, "  ")

		assert.ErrorIs(t, err, authDomain.ErrInvalidSession)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		uc, m := newAuthUseCase(t)
		m.sessionService.On("Verify", ctx, "a.b.c").Return(authDomain.Claims{}, false).Once()

		_, err := uc.Authenticate(ctx, "a.b.c")

		assert.ErrorIs(t, err, authDomain.ErrInvalidSession)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_NonUUIDSubject", func(t *testing.T) {
		uc, m := newAuthUseCase(t)
		m.sessionService.On("Verify", ctx, "a.b.c").
			Return(authDomain.Claims{Subject: "42", Email: "john@example.com"}, true).Once()

		_, err := uc.Authenticate(ctx, "a.b.c")

		assert.ErrorIs(t, err, authDomain.ErrInvalidSession)
	})
}

func TestAuthUseCase_LoginThenAuthenticate(t *testing.T) {
	ctx := context.Background()

	passwordService, err := authService.NewPasswordService(authService.AlgorithmScrypt)
	require.NoError(t, err)
	sessionService, err := authService.NewSessionService(
		[]byte("0f1e2d3c4b5a69788796a5b4c3d2e1f0"),
		authDomain.DefaultSessionTTL,
		nil,
		nil,
	)
	require.NoError(t, err)

	digest, err := passwordService.Hash("secret1")
	require.NoError(t, err)
	user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "john@example.com", PasswordHash: digest}

	userRepo := &MockUserRepository{}
	userRepo.On("GetByEmail", ctx, "john@example.com").Return(user, nil)

	uc := NewAuthUseCase(userRepo, passwordService, sessionService, slog.New(slog.DiscardHandler))

	output, err := uc.Login(ctx, LoginInput{Email: "john@example.com", Password: "secret1"})
	require.NoError(t, err)

	session, err := uc.Authenticate(ctx, output.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, user.Email, session.Email)
}
