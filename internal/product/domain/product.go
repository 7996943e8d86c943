// Package domain defines the product entity, its listing options and domain errors.
//
// A product belongs to the user who created it. Only that user may change or
// delete it; everyone, signed in or not, may read it.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/errors"
)

// Listing limits.
const (
	DefaultListLimit   = 50
	MaxListLimit       = 100
	DefaultLatestLimit = 5
	MaxNameLength      = 255
)

// Product is a catalogue entry. Description and Price are optional.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Price       *float64
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for product operations.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")

	// ErrNotProductOwner indicates the caller is not the user who created the product.
	ErrNotProductOwner = errors.Wrap(errors.ErrForbidden, "only the owner can modify this product")
)

// NormalizeDescription trims d and maps an empty result to nil.
func NormalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ProductChanges is a partial update. A nil field is left untouched; a non-nil
// Description that trims to "" clears the stored description.
type ProductChanges struct {
	Name        *string
	Description *string
	Price       *float64
}

// IsEmpty reports whether no field is set.
func (c ProductChanges) IsEmpty() bool {
	return c.Name == nil && c.Description == nil && c.Price == nil
}

// Fields lists the JSON names of the fields being changed.
func (c ProductChanges) Fields() []string {
	fields := make([]string, 0, 3)
	if c.Name != nil {
		fields = append(fields, "name")
	}
	if c.Description != nil {
		fields = append(fields, "description")
	}
	if c.Price != nil {
		fields = append(fields, "price")
	}
	return fields
}

// Apply copies the set fields onto p, trimming name and normalizing description.
func (c ProductChanges) Apply(p *Product) {
	if c.Name != nil {
		p.Name = strings.TrimSpace(*c.Name)
	}
	if c.Description != nil {
		p.Description = NormalizeDescription(c.Description)
	}
	if c.Price != nil {
		price := *c.Price
		p.Price = &price
	}
}
