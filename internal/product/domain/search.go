package domain

import (
	"github.com/allisson/storefront/internal/errors"
)

// SortOrder selects the ordering of a product search.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortName      SortOrder = "name"
)

// ParseSortOrder maps the "sort" query parameter to a SortOrder. An empty value
// means SortNewest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortName:
		return SortOrder(s), nil
	default:
		return "", errors.Wrap(
			errors.ErrInvalidInput,
			"invalid sort parameter: must be one of newest, oldest, price_asc, price_desc, name",
		)
	}
}

// SearchQuery filters products whose name or description contains Term,
// ignoring case. An empty Term matches every product.
type SearchQuery struct {
	Term  string
	Sort  SortOrder
	Limit int
}
