package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/pkg/errors"
)

const productColumns = `product_id, title, description, image_url, base_price_cents, qty_available,
		is_active, category, rating, review_count, specs, created_at, updated_at`

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var isActive bool

	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.ImageURL,
		&product.BasePriceCents,
		&product.QtyAvailable,
		&isActive,
		&product.Category,
		&product.Rating,
		&product.ReviewCount,
		&product.Specs,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.IsActive = &isActive
	return &product, nil
}

func (r *productRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.Error("Failed to scan product", zap.Error(err))
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY product_id`)
}

func (r *productRepository) SearchByTitle(ctx context.Context, title string) ([]*domain.Product, error) {
	return r.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE title ILIKE '%' || $1 || '%' ORDER BY product_id`,
		title,
	)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1`, id)

	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (title, description, image_url, base_price_cents, qty_available,
			is_active, category, rating, review_count, specs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING product_id
	`

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, query,
		product.Title,
		product.Description,
		product.ImageURL,
		product.BasePriceCents,
		product.QtyAvailable,
		product.Active(),
		product.Category,
		product.Rating,
		product.ReviewCount,
		product.Specs,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET title = $2, description = $3, image_url = $4, base_price_cents = $5, qty_available = $6,
			is_active = $7, category = $8, rating = $9, review_count = $10, specs = $11, updated_at = $12
		WHERE product_id = $1
		RETURNING created_at
	`

	product.UpdatedAt = time.Now().UTC()

	err := r.db.QueryRowContext(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.ImageURL,
		product.BasePriceCents,
		product.QtyAvailable,
		product.Active(),
		product.Category,
		product.Rating,
		product.ReviewCount,
		product.Specs,
		product.UpdatedAt,
	).Scan(&product.CreatedAt)

	if err == sql.ErrNoRows {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(product.ID, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}
