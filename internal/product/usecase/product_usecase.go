package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	outboxDomain "github.com/allisson/storefront/internal/outbox/domain"
	"github.com/allisson/storefront/internal/product/domain"
	appValidation "github.com/allisson/storefront/internal/validation"
)

// ProductUseCase handles product-related business logic
type ProductUseCase struct {
	txManager   database.TxManager
	productRepo ProductRepository
	outboxRepo  OutboxEventRepository
}

// NewProductUseCase creates a new ProductUseCase
func NewProductUseCase(
	txManager database.TxManager,
	productRepo ProductRepository,
	outboxRepo OutboxEventRepository,
) UseCase {
	return &ProductUseCase{
		txManager:   txManager,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
	}
}

func validateLimit(limit int) error {
	if limit < 1 || limit > domain.MaxListLimit {
		return apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("limit must be between 1 and %d", domain.MaxListLimit),
		)
	}
	return nil
}

// validateProduct checks the normalized product before it is stored.
func validateProduct(p *domain.Product) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, domain.MaxNameLength).
				Error(fmt.Sprintf("name must be at most %d characters", domain.MaxNameLength)),
		),
		validation.Field(&p.Price, appValidation.NonNegative),
	)
	return appValidation.WrapValidationError(err)
}

// ListProducts returns up to limit products, newest first.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return uc.productRepo.List(ctx, limit)
}

// LatestProducts returns up to limit of the most recently created products.
func (uc *ProductUseCase) LatestProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	return uc.ListProducts(ctx, limit)
}

// SearchProducts trims the term and runs the search with the requested ordering.
func (uc *ProductUseCase) SearchProducts(ctx context.Context, query domain.SearchQuery) ([]*domain.Product, error) {
	if err := validateLimit(query.Limit); err != nil {
		return nil, err
	}
	sort, err := domain.ParseSortOrder(string(query.Sort))
	if err != nil {
		return nil, err
	}

	query.Term = strings.TrimSpace(query.Term)
	query.Sort = sort
	return uc.productRepo.Search(ctx, query)
}

// GetProduct retrieves a product by ID
func (uc *ProductUseCase) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// CreateProduct validates the input, stores the product and records a
// product.created event in the same transaction.
func (uc *ProductUseCase) CreateProduct(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateProductInput,
) (*domain.Product, error) {
	product := &domain.Product{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        strings.TrimSpace(input.Name),
		Description: domain.NormalizeDescription(input.Description),
		CreatedBy:   ownerID,
	}
	if input.Price != nil {
		price := *input.Price
		product.Price = &price
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.productRepo.Create(ctx, product); err != nil {
			return err
		}
		return uc.recordEvent(ctx, outboxDomain.EventProductCreated, map[string]any{
			"product_id": product.ID,
			"created_by": product.CreatedBy,
			"name":       product.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct applies changes to a product owned by actorID.
func (uc *ProductUseCase) UpdateProduct(
	ctx context.Context,
	actorID, productID uuid.UUID,
	changes domain.ProductChanges,
) (*domain.Product, error) {
	if changes.IsEmpty() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no fields to update")
	}

	var product *domain.Product
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = uc.ownedProduct(ctx, actorID, productID)
		if err != nil {
			return err
		}

		changes.Apply(product)
		if err := validateProduct(product); err != nil {
			return err
		}

		if err := uc.productRepo.Update(ctx, product); err != nil {
			return err
		}
		return uc.recordEvent(ctx, outboxDomain.EventProductUpdated, map[string]any{
			"product_id": product.ID,
			"fields":     changes.Fields(),
		})
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product owned by actorID.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.ownedProduct(ctx, actorID, productID); err != nil {
			return err
		}

		if err := uc.productRepo.Delete(ctx, productID); err != nil {
			return err
		}
		return uc.recordEvent(ctx, outboxDomain.EventProductDeleted, map[string]any{
			"product_id": productID,
			"deleted_by": actorID,
		})
	})
}

// ownedProduct locks the product row and checks that actorID created it.
func (uc *ProductUseCase) ownedProduct(ctx context.Context, actorID, productID uuid.UUID) (*domain.Product, error) {
	product, err := uc.productRepo.GetByIDForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CreatedBy != actorID {
		return nil, domain.ErrNotProductOwner
	}
	return product, nil
}

func (uc *ProductUseCase) recordEvent(ctx context.Context, eventType string, payload map[string]any) error {
	event, err := outboxDomain.NewOutboxEvent(eventType, payload)
	if err != nil {
		return err
	}
	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}
