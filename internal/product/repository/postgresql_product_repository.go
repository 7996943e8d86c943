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

// postgreSQLSortClauses maps each sort order to its ORDER BY clause. Products
// without a price always sort last.
var postgreSQLSortClauses = map[domain.SortOrder]string{
	domain.SortNewest:    "created_at DESC, id DESC",
	domain.SortOldest:    "created_at ASC, id ASC",
	domain.SortPriceAsc:  "price ASC NULLS LAST, created_at DESC",
	domain.SortPriceDesc: "price DESC NULLS LAST, created_at DESC",
	domain.SortName:      "LOWER(name) ASC, created_at DESC",
}

// PostgreSQLProductRepository handles product persistence for PostgreSQL
type PostgreSQLProductRepository struct {
	db *sql.DB
}

// NewPostgreSQLProductRepository creates a new PostgreSQLProductRepository
func NewPostgreSQLProductRepository(db *sql.DB) *PostgreSQLProductRepository {
	return &PostgreSQLProductRepository{db: db}
}

// Create inserts a new product and fills in its timestamps.
func (r *PostgreSQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO products (id, name, description, price, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING created_at, updated_at`

	err := querier.QueryRowContext(
		ctx,
		query,
		product.ID,
		product.Name,
		nullString(product.Description),
		nullFloat64(product.Price),
		product.CreatedBy,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// GetByID retrieves a product by ID
func (r *PostgreSQLProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}
	return product, nil
}

// GetByIDForUpdate retrieves a product and locks its row until the surrounding
// transaction ends.
func (r *PostgreSQLProductRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	product, err := scanProduct(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get product")
	}
	return product, nil
}

// Update writes name, description and price and refreshes updated_at.
func (r *PostgreSQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE products SET name = $1, description = $2, price = $3, updated_at = NOW()
			  WHERE id = $4
			  RETURNING updated_at`

	err := querier.QueryRowContext(
		ctx,
		query,
		product.Name,
		nullString(product.Description),
		nullFloat64(product.Price),
		product.ID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return apperrors.Wrap(err, "failed to update product")
	}
	return nil
}

// Delete removes a product.
func (r *PostgreSQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}
	return requireAffected(result)
}

// List returns up to limit products, newest first.
func (r *PostgreSQLProductRepository) List(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
			  ORDER BY ` + postgreSQLSortClauses[domain.SortNewest] + `
			  LIMIT $1`
	return r.query(ctx, query, limit)
}

// Search returns products whose name or description contains the term, ignoring case.
func (r *PostgreSQLProductRepository) Search(
	ctx context.Context,
	q domain.SearchQuery,
) ([]*domain.Product, error) {
	orderBy, ok := postgreSQLSortClauses[q.Sort]
	if !ok {
		orderBy = postgreSQLSortClauses[domain.SortNewest]
	}

	if q.Term == "" {
		query := fmt.Sprintf(`SELECT %s FROM products ORDER BY %s LIMIT $1`, productColumns, orderBy)
		return r.query(ctx, query, q.Limit)
	}

	query := fmt.Sprintf(`SELECT %s FROM products
			  WHERE name ILIKE $1 OR description ILIKE $1
			  ORDER BY %s
			  LIMIT $2`, productColumns, orderBy)
	return r.query(ctx, query, containsPattern(q.Term), q.Limit)
}

func (r *PostgreSQLProductRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
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
		product, err := scanProduct(rows)
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

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var description sql.NullString
	var price sql.NullFloat64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		&price,
		&product.CreatedBy,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	setNullable(&product, description, price)
	return &product, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
