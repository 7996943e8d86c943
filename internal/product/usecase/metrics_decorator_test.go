package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/storefront/internal/product/domain"
)

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics
type MockBusinessMetrics struct {
	mock.Mock
}

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestProductUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV7())
	productID := uuid.Must(uuid.NewV7())

	tests := []struct {
		operation string
		status    string
		setup     func(m productMocks)
		call      func(uc UseCase) error
	}{
		{
			operation: "product_list",
			status:    "success",
			setup: func(m productMocks) {
				m.productRepo.On("List", ctx, 10).Return([]*domain.Product{}, nil)
			},
			call: func(uc UseCase) error {
				_, err := uc.ListProducts(ctx, 10)
				return err
			},
		},
		{
			operation: "product_latest",
			status:    "success",
			setup: func(m productMocks) {
				m.productRepo.On("List", ctx, 5).Return([]*domain.Product{}, nil)
			},
			call: func(uc UseCase) error {
				_, err := uc.LatestProducts(ctx, 5)
				return err
			},
		},
		{
			operation: "product_search",
			status:    "error",
			setup:     func(m productMocks) {},
			call: func(uc UseCase) error {
				_, err := uc.SearchProducts(ctx, domain.SearchQuery{Limit: 0})
				return err
			},
		},
		{
			operation: "product_get",
			status:    "error",
			setup: func(m productMocks) {
				m.productRepo.On("GetByID", ctx, productID).Return(nil, domain.ErrProductNotFound)
			},
			call: func(uc UseCase) error {
				_, err := uc.GetProduct(ctx, productID)
				return err
			},
		},
		{
			operation: "product_create",
			status:    "error",
			setup:     func(m productMocks) {},
			call: func(uc UseCase) error {
				_, err := uc.CreateProduct(ctx, ownerID, CreateProductInput{})
				return err
			},
		},
		{
			operation: "product_update",
			status:    "error",
			setup:     func(m productMocks) {},
			call: func(uc UseCase) error {
				_, err := uc.UpdateProduct(ctx, ownerID, productID, domain.ProductChanges{})
				return err
			},
		},
		{
			operation: "product_delete",
			status:    "error",
			setup: func(m productMocks) {
				m.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
				m.productRepo.On("GetByIDForUpdate", ctx, productID).Return(nil, domain.ErrProductNotFound)
			},
			call: func(uc UseCase) error {
				return uc.DeleteProduct(ctx, ownerID, productID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			inner, m := newProductUseCase(t)
			tt.setup(m)

			bm := &MockBusinessMetrics{}
			bm.On("RecordOperation", ctx, "product", tt.operation, tt.status).Once()
			bm.On("RecordDuration", ctx, "product", tt.operation, mock.AnythingOfType("time.Duration"), tt.status).
				Once()

			err := tt.call(NewProductUseCaseWithMetrics(inner, bm))

			assert.Equal(t, tt.status == "error", err != nil)
			bm.AssertExpectations(t)
		})
	}
}
