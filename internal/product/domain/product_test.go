package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/storefront/internal/errors"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNormalizeDescription(t *testing.T) {
	assert.Nil(t, NormalizeDescription(nil))
	assert.Nil(t, NormalizeDescription(ptr("")))
	assert.Nil(t, NormalizeDescription(ptr("   ")))
	assert.Equal(t, "soft cotton", *NormalizeDescription(ptr("  soft cotton ")))
}

func TestProductChanges(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.True(t, ProductChanges{}.IsEmpty())
		assert.Empty(t, ProductChanges{}.Fields())
	})

	t.Run("apply name and price", func(t *testing.T) {
		p := &Product{Name: "Old", Description: ptr("keep"), Price: ptr(1.5)}
		changes := ProductChanges{Name: ptr("  New  "), Price: ptr(0.0)}

		changes.Apply(p)

		assert.Equal(t, "New", p.Name)
		assert.Equal(t, "keep", *p.Description)
		assert.Equal(t, 0.0, *p.Price)
		assert.Equal(t, []string{"name", "price"}, changes.Fields())
	})

	t.Run("empty description clears it", func(t *testing.T) {
		p := &Product{Name: "Shirt", Description: ptr("cotton")}

		ProductChanges{Description: ptr(" ")}.Apply(p)

		assert.Nil(t, p.Description)
	})

	t.Run("price is copied", func(t *testing.T) {
		price := 9.99
		p := &Product{}

		ProductChanges{Price: &price}.Apply(p)
		price = 1

		assert.Equal(t, 9.99, *p.Price)
	})
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrProductNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrNotProductOwner, apperrors.ErrForbidden)
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input string
		want  SortOrder
	}{
		{"", SortNewest},
		{"newest", SortNewest},
		{"oldest", SortOldest},
		{"price_asc", SortPriceAsc},
		{"price_desc", SortPriceDesc},
		{"name", SortName},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSortOrder("random")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
