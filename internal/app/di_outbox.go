package app

import (
	"fmt"
	"sync"

	"github.com/allisson/storefront/internal/database"
	outboxRepository "github.com/allisson/storefront/internal/outbox/repository"
	outboxUsecase "github.com/allisson/storefront/internal/outbox/usecase"
)

type outboxComponents struct {
	outboxRepo        outboxUsecase.OutboxEventRepository
	outboxUseCase     outboxUsecase.UseCase
	outboxRepoInit    sync.Once
	outboxUseCaseInit sync.Once
}

// OutboxRepository returns the outbox event repository for the configured database driver.
// The same repository records events for users and products and feeds the processor.
func (c *Container) OutboxRepository() (outboxUsecase.OutboxEventRepository, error) {
	err := c.lazy(&c.outboxRepoInit, "outboxRepo", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for outbox repository: %w", err)
		}

		switch {
		case database.IsMySQL(c.config.DBDriver):
			c.outboxRepo = outboxRepository.NewMySQLOutboxEventRepository(db)
		case database.IsPostgres(c.config.DBDriver):
			c.outboxRepo = outboxRepository.NewPostgreSQLOutboxEventRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.outboxRepo, nil
}

// OutboxUseCase returns the outbox processor.
func (c *Container) OutboxUseCase() (outboxUsecase.UseCase, error) {
	err := c.lazy(&c.outboxUseCaseInit, "outboxUseCase", func() (err error) {
		c.outboxUseCase, err = c.initOutboxUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.outboxUseCase, nil
}

// initOutboxUseCase creates the outbox use case with all its dependencies.
func (c *Container) initOutboxUseCase() (outboxUsecase.UseCase, error) {
	logger := c.Logger()

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for outbox use case: %w", err)
	}

	useCaseConfig := outboxUsecase.Config{
		Interval:   c.config.OutboxInterval,
		BatchSize:  c.config.OutboxBatchSize,
		MaxRetries: c.config.OutboxMaxRetries,
	}

	eventProcessor := outboxUsecase.NewLoggingEventProcessor(logger, businessMetrics)
	return outboxUsecase.NewOutboxUseCase(useCaseConfig, txManager, outboxRepo, eventProcessor, logger), nil
}
