package app

import (
	"fmt"
	"sync"

	"github.com/allisson/storefront/internal/database"
	productHTTP "github.com/allisson/storefront/internal/product/http"
	productRepository "github.com/allisson/storefront/internal/product/repository"
	productUsecase "github.com/allisson/storefront/internal/product/usecase"
)

type productComponents struct {
	productRepo        productUsecase.ProductRepository
	productUseCase     productUsecase.UseCase
	productHandler     *productHTTP.ProductHandler
	productRepoInit    sync.Once
	productUseCaseInit sync.Once
	productHandlerInit sync.Once
}

// ProductRepository returns the product repository for the configured database driver.
func (c *Container) ProductRepository() (productUsecase.ProductRepository, error) {
	err := c.lazy(&c.productRepoInit, "productRepo", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for product repository: %w", err)
		}

		switch {
		case database.IsMySQL(c.config.DBDriver):
			c.productRepo = productRepository.NewMySQLProductRepository(db)
		case database.IsPostgres(c.config.DBDriver):
			c.productRepo = productRepository.NewPostgreSQLProductRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.productRepo, nil
}

// ProductUseCase returns the product use case instance.
func (c *Container) ProductUseCase() (productUsecase.UseCase, error) {
	err := c.lazy(&c.productUseCaseInit, "productUseCase", func() (err error) {
		c.productUseCase, err = c.initProductUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.productUseCase, nil
}

// ProductHandler returns the HTTP handler for product routes.
func (c *Container) ProductHandler() (*productHTTP.ProductHandler, error) {
	err := c.lazy(&c.productHandlerInit, "productHandler", func() error {
		useCase, err := c.ProductUseCase()
		if err != nil {
			return fmt.Errorf("failed to get product use case for product handler: %w", err)
		}
		c.productHandler = productHTTP.NewProductHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.productHandler, nil
}

// initProductUseCase creates the product use case with all its dependencies.
func (c *Container) initProductUseCase() (productUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for product use case: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for product use case: %w", err)
	}

	baseUseCase := productUsecase.NewProductUseCase(txManager, productRepo, outboxRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
		}
		return productUsecase.NewProductUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
