// Package repository provides data persistence implementations for product entities.
package repository

import (
	"database/sql"
	"strings"

	"github.com/allisson/storefront/internal/product/domain"
)

const productColumns = `id, name, description, price, created_by, created_at, updated_at`

// likeReplacer escapes LIKE metacharacters so a search term matches literally.
var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching any value that contains term.
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// setNullable copies nullable column values onto the product.
func setNullable(p *domain.Product, description sql.NullString, price sql.NullFloat64) {
	p.Description = nil
	if description.Valid {
		d := description.String
		p.Description = &d
	}
	p.Price = nil
	if price.Valid {
		v := price.Float64
		p.Price = &v
	}
}
