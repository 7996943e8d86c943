package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (a *authUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)
	metrics.Observe(ctx, a.metrics, "auth", "login", start, err)
	return output, err
}

// Authenticate records metrics for session verification.
func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.Authenticate(ctx, token)
	metrics.Observe(ctx, a.metrics, "auth", "authenticate", start, err)
	return session, err
}
