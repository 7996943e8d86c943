// Package usecase implements product business logic: public listing and search,
// and owner-scoped create, update and delete.
package usecase

import (
	"context"

	"github.com/google/uuid"

	outboxDomain "github.com/allisson/storefront/internal/outbox/domain"
	"github.com/allisson/storefront/internal/product/domain"
)

// CreateProductInput contains the fields of a new product.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       *float64
}

// ProductRepository interface defines product repository operations
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]*domain.Product, error)
	Search(ctx context.Context, query domain.SearchQuery) ([]*domain.Product, error)
}

// OutboxEventRepository interface defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// UseCase defines the interface for product business logic operations
type UseCase interface {
	// ListProducts returns up to limit products, newest first.
	ListProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	// LatestProducts returns the landing page selection of recent products.
	LatestProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	// SearchProducts filters by a case-insensitive substring of name or description.
	SearchProducts(ctx context.Context, query domain.SearchQuery) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// CreateProduct records ownerID as the product's owner.
	CreateProduct(ctx context.Context, ownerID uuid.UUID, input CreateProductInput) (*domain.Product, error)
	// UpdateProduct applies a partial update. Only the owner may update.
	UpdateProduct(
		ctx context.Context,
		actorID, productID uuid.UUID,
		changes domain.ProductChanges,
	) (*domain.Product, error)
	// DeleteProduct removes the product. Only the owner may delete.
	DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error
}
