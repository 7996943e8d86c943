package app

import (
	"fmt"
	"sync"

	"github.com/allisson/storefront/internal/database"
	userHTTP "github.com/allisson/storefront/internal/user/http"
	userRepository "github.com/allisson/storefront/internal/user/repository"
	userUsecase "github.com/allisson/storefront/internal/user/usecase"
)

type userComponents struct {
	userRepo        userUsecase.UserRepository
	userUseCase     userUsecase.UseCase
	userHandler     *userHTTP.UserHandler
	userRepoInit    sync.Once
	userUseCaseInit sync.Once
	userHandlerInit sync.Once
}

// UserRepository returns the user repository for the configured database driver.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	err := c.lazy(&c.userRepoInit, "userRepo", func() (err error) {
		c.userRepo, err = c.initUserRepository()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.userRepo, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	err := c.lazy(&c.userUseCaseInit, "userUseCase", func() (err error) {
		c.userUseCase, err = c.initUserUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.userUseCase, nil
}

// UserHandler returns the HTTP handler for registration and user count.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	err := c.lazy(&c.userHandlerInit, "userHandler", func() error {
		useCase, err := c.UserUseCase()
		if err != nil {
			return fmt.Errorf("failed to get user use case for user handler: %w", err)
		}
		c.userHandler = userHTTP.NewUserHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.userHandler, nil
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (userUsecase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch {
	case database.IsMySQL(c.config.DBDriver):
		return userRepository.NewMySQLUserRepository(db), nil
	case database.IsPostgres(c.config.DBDriver):
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (userUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for user use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, err
	}

	baseUseCase := userUsecase.NewUserUseCase(txManager, userRepo, outboxRepo, passwordService)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return userUsecase.NewUserUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
