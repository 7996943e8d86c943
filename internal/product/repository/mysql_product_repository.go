package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/database"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/product/domain"
)

// mySQLSortClauses mirrors postgreSQLSortClauses; MySQL has no NULLS LAST.
var mySQLSortClauses = map[domain.SortOrder]string{
	domain.SortNewest:    "created_at DESC, id DESC",
	domain.SortOldest:    "created_at ASC, id ASC",
	domain.SortPriceAsc:  "price IS NULL, price ASC, created_at DESC",
	domain.SortPriceDesc: "price IS NULL, price DESC, created_at DESC",
	domain.SortName:      "LOWER(name) ASC, created_at DESC",
}

// MySQLProductRepository handles product persistence for MySQL.
// Identifiers are stored as BINARY(16).
type MySQLProductRepository struct {
	db *sql.DB
}

// NewMySQLProductRepository creates a new MySQLProductRepository
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// Create inserts a new product. Timestamps are set client-side.
func (r *MySQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, r.db)

	id, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}
	createdBy, err := product.CreatedBy.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner id")
	}

	query := `INSERT INTO products (id, name, description, price, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := database.Now()
	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		product.Name,
		nullString(product.Description),
		nullFloat64(product.Price),
		createdBy,
		now,
		now,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}

	product.CreatedAt = now
	product.UpdatedAt = now
	return nil
}

// GetByID retrieves a product by ID
func (r *MySQLProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

// GetByIDForUpdate retrieves a product and locks its row until the surrounding
// transaction ends.
func (r *MySQLProductRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = ? FOR UPDATE`, id)
}

// Update writes name, description and price and refreshes updated_at.
func (r *MySQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, r.db)

	id, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `UPDATE products SET name = ?, description = ?, price = ?, updated_at = ?
			  WHERE id = ?`

	now := database.Now()
	result, err := querier.ExecContext(
		ctx,
		query,
		product.Name,
		nullString(product.Description),
		nullFloat64(product.Price),
		now,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update product")
	}

	// updated_at always changes, so zero affected rows means the product is gone.
	if err := requireAffected(result); err != nil {
		return err
	}

	product.UpdatedAt = now
	return nil
}

// Delete removes a product.
func (r *MySQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}
	return requireAffected(result)
}

// List returns up to limit products, newest first.
func (r *MySQLProductRepository) List(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
			  ORDER BY ` + mySQLSortClauses[domain.SortNewest] + `
			  LIMIT ?`
	return r.query(ctx, query, limit)
}

// Search returns products whose name or description contains the term, ignoring case.
func (r *MySQLProductRepository) Search(ctx context.Context, q domain.SearchQuery) ([]*domain.Product, error) {
	orderBy, ok := mySQLSortClauses[q.Sort]
	if !ok {
		orderBy = mySQLSortClauses[domain.SortNewest]
	}

	if q.Term == "" {
		query := fmt.Sprintf(`SELECT %s FROM products ORDER BY %s LIMIT ?`, productColumns, orderBy)
		return r.query(ctx, query, q.Limit)
	}

	pattern := containsPattern(q.Term)
	query := fmt.Sprintf(`SELECT %s FROM products
			  WHERE LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)
			  ORDER BY %s
			  LIMIT ?`, productColumns, orderBy)
	return r.query(ctx, query, pattern, pattern, q.Limit)
}

func (r *MySQLProductRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal product id")
	}

	product, err := scanMySQLProduct(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}
	return product, nil
}

func (r *MySQLProductRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list products")
	}
	defer func() {
		_ = rows.Close()
	}()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanMySQLProduct(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan product")
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate products")
	}

	return products, nil
}

func scanMySQLProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var id, createdBy []byte
	var description sql.NullString
	var price sql.NullFloat64

	err := row.Scan(
		&id,
		&product.Name,
		&description,
		&price,
		&createdBy,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := product.ID.UnmarshalBinary(id); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product id: %w", err)
	}
	if err := product.CreatedBy.UnmarshalBinary(createdBy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal owner id: %w", err)
	}

	setNullable(&product, description, price)
	return &product, nil
}
