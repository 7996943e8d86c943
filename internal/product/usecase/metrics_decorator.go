package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/metrics"
	"github.com/allisson/storefront/internal/product/domain"
)

const metricsDomain = "product"

// productUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type productUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) ListProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	start := time.Now()
	products, err := p.next.ListProducts(ctx, limit)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_list", start, err)
	return products, err
}

func (p *productUseCaseWithMetrics) LatestProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	start := time.Now()
	products, err := p.next.LatestProducts(ctx, limit)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_latest", start, err)
	return products, err
}

func (p *productUseCaseWithMetrics) SearchProducts(
	ctx context.Context,
	query domain.SearchQuery,
) ([]*domain.Product, error) {
	start := time.Now()
	products, err := p.next.SearchProducts(ctx, query)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_search", start, err)
	return products, err
}

func (p *productUseCaseWithMetrics) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.GetProduct(ctx, id)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_get", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) CreateProduct(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateProductInput,
) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.CreateProduct(ctx, ownerID, input)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_create", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) UpdateProduct(
	ctx context.Context,
	actorID, productID uuid.UUID,
	changes domain.ProductChanges,
) (*domain.Product, error) {
	start := time.Now()
	product, err := p.next.UpdateProduct(ctx, actorID, productID, changes)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_update", start, err)
	return product, err
}

func (p *productUseCaseWithMetrics) DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error {
	start := time.Now()
	err := p.next.DeleteProduct(ctx, actorID, productID)
	metrics.Observe(ctx, p.metrics, metricsDomain, "product_delete", start, err)
	return err
}
