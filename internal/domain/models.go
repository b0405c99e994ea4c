package domain

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the backend record shape this build understands
const SchemaVersion = 1

// Product is the canonical backend product record
type Product struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	BasePriceCents int64     `json:"basePriceCents"`
	QtyAvailable   int       `json:"qtyAvailable"`
	IsActive       *bool     `json:"isActive,omitempty"` // absent means active
	Category       string    `json:"category,omitempty"`
	Rating         float64   `json:"rating,omitempty"`
	ReviewCount    int       `json:"reviewCount,omitempty"`
	Specs          Specs     `json:"specs,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Active reports the record's active flag, defaulting to true
func (p *Product) Active() bool {
	return p.IsActive == nil || *p.IsActive
}

// Address is a shipping destination
type Address struct {
	FullName string `json:"fullName" binding:"required"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Zip      string `json:"zip" binding:"required"`
	Country  string `json:"country"`
}

// Order is a placed order as stored by the backend
type Order struct {
	ID              int64       `json:"id"`
	Reference       uuid.UUID   `json:"reference"`
	UserID          int64       `json:"userId"`
	DiscountID      *int64      `json:"discountId,omitempty"`
	SubtotalCents   int64       `json:"subtotalCents"`
	DiscountCents   int64       `json:"discountCents"`
	ShippingCents   int64       `json:"shippingCents"`
	TaxRateBasis    int         `json:"taxRateBasis"`
	TaxCents        int64       `json:"taxCents"`
	TotalCents      int64       `json:"totalCents"`
	Status          OrderStatus `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	Items           []OrderItem `json:"items"`
	PlacedAt        time.Time   `json:"placedAt"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem is one line of a placed order
type OrderItem struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"orderId"`
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// User is a storefront account
type User struct {
	ID           int64     `json:"user_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
