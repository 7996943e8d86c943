package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	apperrors "github.com/allisson/storefront/internal/errors"
)

// sessionClaims is the JSON payload carried by a session token.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type sessionService struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
	parser *jwt.Parser
	logger *slog.Logger
}

// NewSessionService creates a SessionService signing with secret using HMAC-SHA256.
// The secret, TTL and clock are fixed for the lifetime of the service.
func NewSessionService(
	secret []byte,
	ttl time.Duration,
	clock Clock,
	logger *slog.Logger,
) (SessionService, error) {
	if len(secret) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session secret must not be empty")
	}
	if ttl <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session ttl must be positive")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &sessionService{
		secret: key,
		ttl:    ttl,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{authDomain.SessionSigningAlgorithm}),
			jwt.WithTimeFunc(clock.Now),
			jwt.WithStrictDecoding(),
		),
		logger: logger,
	}, nil
}

// Issue signs claims with iat = now and exp = now + TTL, both in whole seconds.
func (s *sessionService) Issue(
	ctx context.Context,
	claims authDomain.Claims,
) (*authDomain.IssuedSession, error) {
	issuedAt := s.clock.Now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign session token")
	}

	return &authDomain.IssuedSession{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify returns the claims of a well-formed, authentic, unexpired token.
func (s *sessionService) Verify(ctx context.Context, token string) (authDomain.Claims, bool) {
	claims, failure := s.verify(token)
	if failure != authDomain.FailureNone {
		s.logger.DebugContext(ctx, "session token rejected", slog.String("reason", string(failure)))
		return authDomain.Claims{}, false
	}
	return claims, true
}

// TTL returns the validity window applied to issued tokens.
func (s *sessionService) TTL() time.Duration {
	return s.ttl
}

func (s *sessionService) verify(token string) (authDomain.Claims, authDomain.VerifyFailure) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return authDomain.Claims{}, authDomain.FailureMalformed
	}
	for _, segment := range segments {
		if segment == "" {
			return authDomain.Claims{}, authDomain.FailureMalformed
		}
	}

	parsed := &sessionClaims{}
	_, err := s.parser.ParseWithClaims(token, parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return authDomain.Claims{}, classifyParseError(err)
	}

	if parsed.Subject == "" || parsed.Email == "" {
		return authDomain.Claims{}, authDomain.FailureMalformed
	}

	return authDomain.Claims{Subject: parsed.Subject, Email: parsed.Email}, authDomain.FailureNone
}

func classifyParseError(err error) authDomain.VerifyFailure {
	switch {
	case apperrors.Is(err, jwt.ErrTokenSignatureInvalid):
		return authDomain.FailureForged
	case apperrors.Is(err, jwt.ErrTokenExpired):
		return authDomain.FailureExpired
	default:
		return authDomain.FailureMalformed
	}
}
