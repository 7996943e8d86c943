// Package dto provides data transfer objects for the product HTTP layer.
package dto

import (
	"errors"

	validation "github.com/jellydator/validation"

	"github.com/allisson/storefront/internal/product/domain"
	"github.com/allisson/storefront/internal/product/usecase"
	customValidation "github.com/allisson/storefront/internal/validation"
)

// CreateProductRequest contains the fields for POST /v1/products.
// A JSON null price or description is the same as omitting it.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Validate checks the request before it reaches the use case.
func (r *CreateProductRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			customValidation.NotBlank,
		),
		validation.Field(&r.Price, customValidation.NonNegative),
	)
	return customValidation.WrapValidationError(err)
}

// ToCreateProductInput converts the request to use case input.
func (r *CreateProductRequest) ToCreateProductInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
	}
}

// UpdateProductRequest contains the fields for PUT /v1/products/:id. Absent
// and null fields are left unchanged; an empty description clears it.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Validate checks that at least one field is set and that set fields are usable.
func (r *UpdateProductRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Price == nil {
		return customValidation.WrapValidationError(errors.New("no fields to update"))
	}

	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name cannot be empty"),
			customValidation.NotBlank.Error("name cannot be empty"),
		),
		validation.Field(&r.Price, customValidation.NonNegative),
	)
	return customValidation.WrapValidationError(err)
}

// ToProductChanges converts the request to a partial update.
func (r *UpdateProductRequest) ToProductChanges() domain.ProductChanges {
	return domain.ProductChanges{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
	}
}
