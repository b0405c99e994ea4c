// Package cart implements the shopping cart aggregate.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/money"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrLineNotFound    = errors.New("product not in cart")
)

// Line is one cart entry. Name, Image and Price are captured when the
// product is first added.
type Line struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart holds at most one line per product, in the order products were added.
type Cart struct {
	Lines []Line `json:"items"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Lines: []Line{}}
}

func (c *Cart) index(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts quantity units of p in the cart. An existing line is incremented
// and keeps its original snapshot.
func (c *Cart) Add(p catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Quantity += quantity
		return nil
	}

	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		Quantity:  quantity,
	})
	return nil
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID int64) {
	if i := c.index(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// UpdateQuantity sets a line's quantity. Quantities below one are rejected
// and leave the line as it was; removal is always explicit.
func (c *Cart) UpdateQuantity(productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i := c.index(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Lines[i].Quantity = quantity
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// Line returns the line for productID.
func (c *Cart) Line(productID int64) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i], true
	}
	return Line{}, false
}

// Subtotal is the exact sum of price*quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(money.LineTotal(l.Price, l.Quantity))
	}
	return total
}

// Total is Subtotal in major units.
func (c *Cart) Total() float64 {
	return c.Subtotal().InexactFloat64()
}

// ItemCount is the number of units across all lines, as shown on the badge.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Snapshot copies the current lines.
func (c *Cart) Snapshot() []Line {
	out := make([]Line, len(c.Lines))
	copy(out, c.Lines)
	return out
}
