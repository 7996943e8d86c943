package app

import (
	"context"
	"fmt"
	"sync"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	authService "github.com/allisson/storefront/internal/auth/service"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
)

type authComponents struct {
	secretService   authService.SecretService
	passwordService authService.PasswordService
	sessionService  authService.SessionService
	authUseCase     authUseCase.AuthUseCase
	authHandler     *authHTTP.AuthHandler

	secretServiceInit   sync.Once
	passwordServiceInit sync.Once
	sessionServiceInit  sync.Once
	authUseCaseInit     sync.Once
	authHandlerInit     sync.Once
}

// SecretService returns the service that generates, wraps and resolves the session secret.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService(authService.NewKMSService())
	})
	return c.secretService
}

// PasswordService returns the password hasher for the configured algorithm.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	err := c.lazy(&c.passwordServiceInit, "passwordService", func() error {
		service, err := authService.NewPasswordService(
			authService.PasswordAlgorithm(c.config.PasswordHashAlgorithm),
		)
		if err != nil {
			return fmt.Errorf("failed to create password service: %w", err)
		}
		c.passwordService = service
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.passwordService, nil
}

// SessionService returns the session token service. The signing secret is resolved
// on first access, decrypting SESSION_SECRET_CIPHERTEXT through KMS when it is set.
func (c *Container) SessionService(ctx context.Context) (authService.SessionService, error) {
	err := c.lazy(&c.sessionServiceInit, "sessionService", func() error {
		secret, err := c.SecretService().ResolveSecret(
			ctx,
			c.config.SessionSecret,
			c.config.SessionSecretCiphertext,
			c.config.KMSKeyURI,
		)
		if err != nil {
			return fmt.Errorf("failed to resolve session secret: %w", err)
		}

		service, err := authService.NewSessionService(
			secret,
			c.config.SessionTTL,
			authService.SystemClock{},
			c.Logger(),
		)
		if err != nil {
			return fmt.Errorf("failed to create session service: %w", err)
		}
		c.sessionService = service
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.sessionService, nil
}

// AuthUseCase returns the login and session authentication use case.
func (c *Container) AuthUseCase(ctx context.Context) (authUseCase.AuthUseCase, error) {
	err := c.lazy(&c.authUseCaseInit, "authUseCase", func() (err error) {
		c.authUseCase, err = c.initAuthUseCase(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.authUseCase, nil
}

// AuthHandler returns the HTTP handler for login, logout and me.
func (c *Container) AuthHandler(ctx context.Context) (*authHTTP.AuthHandler, error) {
	err := c.lazy(&c.authHandlerInit, "authHandler", func() error {
		useCase, err := c.AuthUseCase(ctx)
		if err != nil {
			return fmt.Errorf("failed to get auth use case for auth handler: %w", err)
		}
		c.authHandler = authHTTP.NewAuthHandler(useCase, c.cookieConfig(), c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.authHandler, nil
}

// cookieConfig marks the session cookie Secure in production and aligns its
// Max-Age with the session TTL.
func (c *Container) cookieConfig() authHTTP.CookieConfig {
	return authHTTP.CookieConfig{
		Secure: c.config.IsProduction(),
		TTL:    c.config.SessionTTL,
	}
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase(ctx context.Context) (authUseCase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, err
	}

	sessionService, err := c.SessionService(ctx)
	if err != nil {
		return nil, err
	}

	baseUseCase := authUseCase.NewAuthUseCase(userRepo, passwordService, sessionService, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
