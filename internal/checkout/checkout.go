// Package checkout drives the Shipping -> Payment -> Review flow and turns
// a cart into an order submission.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/cart"
	"github.com/inkhouse/storefront/internal/domain"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("sign in required")
	ErrNotAtReview      = errors.New("order can only be placed from the review step")
)

// DefaultCountry pre-fills the shipping form
const DefaultCountry = "USA"

// Stage is one step of checkout
type Stage int

const (
	StageShipping Stage = iota
	StagePayment
	StageReview
)

var stageNames = [...]string{"Shipping", "Payment", "Review"}

func (s Stage) String() string {
	if s < StageShipping || s > StageReview {
		return "Unknown"
	}
	return stageNames[s]
}

// Payment is collected card data, passed through to the order collaborator
// as entered. The security code is checked at entry and never kept.
type Payment struct {
	CardNumber string `json:"cardNumber" binding:"required"`
	CardName   string `json:"cardName" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
}

// Last4 returns the last four digits of the card number for display
func (p Payment) Last4() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p.CardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// OrderRequest is the single order-creation payload sent on submit
type OrderRequest struct {
	UserID   int64          `json:"userId"`
	Items    []cart.Line    `json:"items"`
	Total    float64        `json:"total"`
	Shipping domain.Address `json:"shipping"`
	Payment  Payment        `json:"payment"`
}

// Confirmation is what the order collaborator returns
type Confirmation struct {
	OrderID   int64   `json:"orderId"`
	Reference string  `json:"reference,omitempty"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
}

// Submitter creates orders
type Submitter interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (*Confirmation, error)
}

// Flow is the state of one checkout in progress
type Flow struct {
	Stage    Stage          `json:"stage"`
	Shipping domain.Address `json:"shipping"`
	Payment  Payment        `json:"payment"`
}

// Begin opens checkout. An empty cart or an anonymous session keeps the
// flow closed.
func Begin(c *cart.Cart, authenticated bool) (*Flow, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !authenticated {
		return nil, ErrNotAuthenticated
	}
	return &Flow{
		Stage:    StageShipping,
		Shipping: domain.Address{Country: DefaultCountry},
	}, nil
}

// Next advances one stage. It reports whether the stage changed.
func (f *Flow) Next() bool {
	if f.Stage >= StageReview {
		return false
	}
	f.Stage++
	return true
}

// Back retreats one stage. It reports whether the stage changed.
func (f *Flow) Back() bool {
	if f.Stage <= StageShipping {
		return false
	}
	f.Stage--
	return true
}

// Totals prices c under pricing
func (f *Flow) Totals(c *cart.Cart, pricing Pricing) Totals {
	return pricing.Totals(c.Subtotal())
}

// Submit places the order. On success the cart is cleared; on failure the
// flow stays on Review and the cart is untouched.
func (f *Flow) Submit(
	ctx context.Context,
	userID int64,
	c *cart.Cart,
	pricing Pricing,
	submitter Submitter,
	logger *zap.Logger,
) (*Confirmation, error) {
	if f.Stage != StageReview {
		return nil, ErrNotAtReview
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	totals := f.Totals(c, pricing)
	req := OrderRequest{
		UserID:   userID,
		Items:    c.Snapshot(),
		Total:    totals.GrandTotal,
		Shipping: f.Shipping,
		Payment:  f.Payment,
	}

	confirmation, err := submitter.SubmitOrder(ctx, req)
	if err != nil {
		logger.Error("Order submission failed",
			zap.Int64("user_id", userID),
			zap.Int("lines", len(req.Items)),
			zap.Error(err),
		)
		return nil, err
	}

	c.Clear()
	logger.Info("Order placed",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", confirmation.OrderID),
		zap.Float64("total", req.Total),
	)
	return confirmation, nil
}

// Pricing holds the shipping rule
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// DefaultPricing is free shipping over $100, otherwise $9.99.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.RequireFromString("9.99"),
	}
}

// Totals is the order summary
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingFee  float64 `json:"shippingFee"`
	GrandTotal   float64 `json:"grandTotal"`
	FreeShipping bool    `json:"freeShipping"`
}

// Totals prices a subtotal. Shipping is free strictly above the threshold.
func (p Pricing) Totals(subtotal decimal.Decimal) Totals {
	fee := p.ShippingFee
	free := subtotal.GreaterThan(p.FreeShippingThreshold)
	if free {
		fee = decimal.Zero
	}
	return Totals{
		Subtotal:     subtotal.Round(2).InexactFloat64(),
		ShippingFee:  fee.InexactFloat64(),
		GrandTotal:   subtotal.Add(fee).Round(2).InexactFloat64(),
		FreeShipping: free,
	}
}
