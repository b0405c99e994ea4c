package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/pkg/errors"
)

const orderColumns = `order_id, reference, user_id, discount_id, subtotal_cents, discount_cents,
		shipping_cents, tax_rate_basis, tax_cents, total_cents, status, shipping_address,
		placed_at, created_at, updated_at`

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var discountID sql.NullInt64
	var address []byte

	err := row.Scan(
		&order.ID,
		&order.Reference,
		&order.UserID,
		&discountID,
		&order.SubtotalCents,
		&order.DiscountCents,
		&order.ShippingCents,
		&order.TaxRateBasis,
		&order.TaxCents,
		&order.TotalCents,
		&order.Status,
		&address,
		&order.PlacedAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discountID.Valid {
		order.DiscountID = &discountID.Int64
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
			return nil, err
		}
	}
	order.Items = []domain.OrderItem{}
	return &order, nil
}

// list loads orders and then their items in a single follow-up query
func (r *orderRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*domain.Order{}
	byID := make(map[int64]*domain.Order)
	ids := []int64{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error("Failed to scan order", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	if err := r.loadItems(ctx, ids, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, ids []int64, byID map[int64]*domain.Order) error {
	query := `
		SELECT id, order_id, product_id, name, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.UnitPriceCents,
		); err != nil {
			r.logger.Error("Failed to scan order item", zap.Error(err))
			return err
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_id`)
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id`, userID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	orders, err := r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	return orders[0], nil
}

// Create inserts the order and its items in one transaction
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if order.Reference == uuid.Nil {
		order.Reference = uuid.New()
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = now
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (reference, user_id, discount_id, subtotal_cents, discount_cents,
			shipping_cents, tax_rate_basis, tax_cents, total_cents, status, shipping_address,
			placed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING order_id
	`

	err = tx.QueryRowContext(ctx, query,
		order.Reference,
		order.UserID,
		order.DiscountID,
		order.SubtotalCents,
		order.DiscountCents,
		order.ShippingCents,
		order.TaxRateBasis,
		order.TaxCents,
		order.TotalCents,
		order.Status,
		address,
		order.PlacedAt,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.Quantity,
			item.UnitPriceCents,
		).Scan(&item.ID); err != nil {
			r.logger.Error("Failed to create order item",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit order", zap.Error(err))
		return err
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE order_id = $1`,
		id, status, time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}
	return requireRow(res, "order", id)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete order", zap.Error(err))
		return err
	}
	return requireRow(res, "order", id)
}

func requireRow(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.ErrNotFound{Resource: resource, ID: strconv.FormatInt(id, 10)}
	}
	return nil
}
