package dto

import (
	"time"

	"github.com/allisson/storefront/internal/product/domain"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListProductsResponse wraps a list of products.
type ListProductsResponse struct {
	Data []ProductResponse `json:"data"`
}

// DeleteProductResponse is returned after a successful delete.
type DeleteProductResponse struct {
	Success bool `json:"success"`
}

// MapProductToResponse converts a domain product to an API response.
func MapProductToResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		CreatedBy:   product.CreatedBy.String(),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// MapProductsToListResponse converts domain products to a list API response.
func MapProductsToListResponse(products []*domain.Product) ListProductsResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, MapProductToResponse(product))
	}
	return ListProductsResponse{Data: responses}
}
