package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkhouse/storefront/internal/cart"
	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/internal/money"
	"github.com/inkhouse/storefront/pkg/errors"
)

// AddToCartRequest adds units of a product. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartRequest sets a line's quantity or steps it by one. Quantity is
// raw field input: a number or a numeric string.
type UpdateCartRequest struct {
	Quantity json.RawMessage `json:"quantity"`
	Step     string          `json:"step" binding:"omitempty,oneof=increment decrement"`
}

// quantityInput unwraps the raw quantity, reporting false when it is absent
func quantityInput(raw json.RawMessage) (string, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return text, true
}

// nextQuantity applies field input to current. Non-numeric input and values
// above the maximum keep current; values below the minimum pass through so
// the cart rejects them.
func nextQuantity(current int, input string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(input)); err == nil && n < money.MinQuantity {
		return n
	}
	return money.ParseQuantity(current, input, money.MinQuantity, money.MaxQuantity)
}

type cartResponse struct {
	Items     []cart.Line     `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  float64         `json:"subtotal"`
	Totals    checkout.Totals `json:"totals"`
}

func (sf *Storefront) cartView(c *cart.Cart) cartResponse {
	return cartResponse{
		Items:     c.Snapshot(),
		ItemCount: c.ItemCount(),
		Subtotal:  c.Total(),
		Totals:    sf.Pricing.Totals(c.Subtotal()),
	}
}

// HandleGetCart handles GET /api/storefront/cart
func HandleGetCart(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sf.cartView(sess.Cart))
	}
}

// HandleCartCount handles GET /api/storefront/cart/count
func HandleCartCount(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": sess.Cart.ItemCount()})
	}
}

// HandleAddToCart handles POST /api/storefront/cart/items
func HandleAddToCart(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = money.MinQuantity
		}

		products, err := sf.Loader.All(c.Request.Context())
		if err != nil {
			abort(c, sf.Logger, "Failed to load product", err)
			return
		}
		product := catalog.Find(products, req.ProductID)
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if !product.InStock {
			abort(c, sf.Logger, "Product out of stock", &errors.ErrValidation{
				Field:   "productId",
				Message: fmt.Sprintf("%s is out of stock", product.Name),
			})
			return
		}

		limit := money.MaxQuantity
		if product.StockQuantity < limit {
			limit = product.StockQuantity
		}
		if existing, ok := sess.Cart.Line(product.ID); ok {
			limit -= existing.Quantity
		}
		if limit < money.MinQuantity {
			abort(c, sf.Logger, "Cart at stock limit", &errors.ErrValidation{
				Field:   "quantity",
				Message: fmt.Sprintf("only %d of %s in stock", product.StockQuantity, product.Name),
			})
			return
		}
		quantity := money.ClampQuantity(0, req.Quantity, money.MinQuantity, limit)
		if quantity == 0 {
			abort(c, sf.Logger, "Invalid cart quantity", cart.ErrInvalidQuantity)
			return
		}

		if err := sess.Cart.Add(*product, quantity); err != nil {
			abort(c, sf.Logger, "Failed to add to cart", err)
			return
		}
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, sf.cartView(sess.Cart))
	}
}

// HandleUpdateCartItem handles PUT /api/storefront/cart/items/:id
func HandleUpdateCartItem(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req UpdateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		line, ok := sess.Cart.Line(id)
		if !ok {
			abort(c, sf.Logger, "Cart line missing", cart.ErrLineNotFound)
			return
		}

		input, hasQuantity := quantityInput(req.Quantity)

		var quantity int
		switch {
		case req.Step == "increment":
			quantity = money.Increment(line.Quantity, money.MaxQuantity)
		case req.Step == "decrement":
			quantity = money.Decrement(line.Quantity, money.MinQuantity)
		case hasQuantity:
			quantity = nextQuantity(line.Quantity, input)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity or step is required"})
			return
		}

		if err := sess.Cart.UpdateQuantity(id, quantity); err != nil {
			abort(c, sf.Logger, "Failed to update cart", err)
			return
		}
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, sf.cartView(sess.Cart))
	}
}

// HandleRemoveCartItem handles DELETE /api/storefront/cart/items/:id
func HandleRemoveCartItem(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		sess.Cart.Remove(id)
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, sf.cartView(sess.Cart))
	}
}

// HandleClearCart handles DELETE /api/storefront/cart
func HandleClearCart(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		sess.Cart.Clear()
		sess.Checkout = nil
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, sf.cartView(sess.Cart))
	}
}
