package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/money"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/pkg/errors"
)

// taxBasisDivisor turns a tax rate basis into a fraction (825 -> 0.0825)
var taxBasisDivisor = decimal.NewFromInt(10000)

type orderService struct {
	repos        *repository.Repositories
	pricing      checkout.Pricing
	taxRateBasis int
	logger       *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	repos *repository.Repositories,
	pricing checkout.Pricing,
	taxRateBasis int,
	logger *zap.Logger,
) *orderService {
	return &orderService{
		repos:        repos,
		pricing:      pricing,
		taxRateBasis: taxRateBasis,
		logger:       logger,
	}
}

func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repos.Order.List(ctx)
}

func (s *orderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, id)
}

func (s *orderService) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.repos.Order.ListByUserID(ctx, userID)
}

// CreateOrder prices a submitted cart and stores it as a placed order
func (s *orderService) CreateOrder(ctx context.Context, req checkout.OrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, &errors.ErrValidation{Field: "items", Message: "Order must contain at least one item"}
	}
	if _, err := s.repos.User.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, &errors.ErrValidation{Field: "quantity", Message: "Valid quantity is required"}
		}
		if line.Price < 0 {
			return nil, &errors.ErrValidation{Field: "price", Message: "Valid price is required"}
		}
		subtotal = subtotal.Add(money.LineTotal(line.Price, line.Quantity))
		items = append(items, domain.OrderItem{
			ProductID:      line.ProductID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: int64(money.FromDollars(line.Price)),
		})
	}

	totals := s.pricing.Totals(subtotal)
	if req.Total != totals.GrandTotal {
		s.logger.Warn("Submitted total does not match computed total",
			zap.Int64("user_id", req.UserID),
			zap.Float64("submitted", req.Total),
			zap.Float64("computed", totals.GrandTotal),
		)
	}

	subtotalCents := int64(money.FromDecimal(subtotal))
	shippingCents := int64(money.FromDollars(totals.ShippingFee))
	taxCents := TaxCents(subtotalCents, s.taxRateBasis)

	address := req.Shipping
	if address.Country == "" {
		address.Country = checkout.DefaultCountry
	}

	order := &domain.Order{
		UserID:          req.UserID,
		SubtotalCents:   subtotalCents,
		DiscountCents:   0,
		ShippingCents:   shippingCents,
		TaxRateBasis:    s.taxRateBasis,
		TaxCents:        taxCents,
		TotalCents:      subtotalCents + shippingCents + taxCents,
		Status:          domain.OrderStatusPlaced,
		ShippingAddress: address,
		Items:           items,
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int64("total_cents", order.TotalCents),
		zap.String("card_last4", req.Payment.Last4()),
	)
	return order, nil
}

// UpdateStatus moves an order to status if the transition is allowed
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	next := domain.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.IsValid() {
		return nil, &errors.ErrValidation{Field: "status", Message: "Invalid order status: " + status}
	}

	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   next,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.Int64("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
	)
	return s.repos.Order.GetByID(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Order.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Order deleted", zap.Int64("order_id", id))
	return nil
}

// TaxCents applies a tax rate basis (hundredths of a percent) to an amount,
// rounding half up to the cent.
func TaxCents(amountCents int64, basis int) int64 {
	return decimal.NewFromInt(amountCents).
		Mul(decimal.NewFromInt(int64(basis))).
		Div(taxBasisDivisor).
		Round(0).
		IntPart()
}

// Summarize renders an order for order history
func Summarize(order *domain.Order) OrderSummary {
	items := make([]OrderSummaryItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderSummaryItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     money.Cents(item.UnitPriceCents).Dollars(),
		})
	}

	return OrderSummary{
		ID:        order.ID,
		Reference: order.Reference.String(),
		Date:      order.PlacedAt.Format("2006-01-02"),
		Status:    order.Status.Display(),
		Total:     money.Cents(order.TotalCents).Dollars(),
		Items:     items,
	}
}
