package service

import (
	"github.com/inkhouse/storefront/internal/domain"
)

// ProductInput is the admin create/update payload. Price may be given in
// dollars (as the admin form enters it) or directly in cents.
type ProductInput struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	ImageURL       string       `json:"imageUrl"`
	Price          *float64     `json:"price,omitempty"`
	BasePriceCents *int64       `json:"basePriceCents,omitempty"`
	QtyAvailable   *int         `json:"qtyAvailable"`
	IsActive       *bool        `json:"isActive,omitempty"`
	Category       string       `json:"category"`
	Rating         float64      `json:"rating"`
	ReviewCount    int          `json:"reviewCount"`
	Specs          domain.Specs `json:"specs,omitempty"`
}

// SignUpRequest registers a new account
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// SignInRequest authenticates an existing account
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate changes account details. Empty fields are left as they are.
type ProfileUpdate struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResult is a signed-in user and their token
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// OrderSummary is an order as shown in order history
type OrderSummary struct {
	ID        int64              `json:"id"`
	Reference string             `json:"reference"`
	Date      string             `json:"date"`
	Status    string             `json:"status"`
	Total     float64            `json:"total"`
	Items     []OrderSummaryItem `json:"items"`
}

// OrderSummaryItem is one line of an OrderSummary
type OrderSummaryItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
