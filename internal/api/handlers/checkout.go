package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkhouse/storefront/internal/cart"
	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/session"
)

// PaymentRequest is the payment form. CVV must be present but is not stored.
type PaymentRequest struct {
	checkout.Payment
	CVV string `json:"cvv" binding:"required"`
}

type paymentView struct {
	CardName string `json:"cardName"`
	Last4    string `json:"last4"`
	Expiry   string `json:"expiry"`
}

type checkoutResponse struct {
	Stage    string          `json:"stage"`
	Step     int             `json:"step"`
	Shipping domain.Address  `json:"shipping"`
	Payment  paymentView     `json:"payment"`
	Items    []cart.Line     `json:"items"`
	Totals   checkout.Totals `json:"totals"`
}

func (sf *Storefront) checkoutView(sess *session.Session) checkoutResponse {
	flow := sess.Checkout
	return checkoutResponse{
		Stage:    flow.Stage.String(),
		Step:     int(flow.Stage),
		Shipping: flow.Shipping,
		Payment: paymentView{
			CardName: flow.Payment.CardName,
			Last4:    flow.Payment.Last4(),
			Expiry:   flow.Payment.Expiry,
		},
		Items:  sess.Cart.Snapshot(),
		Totals: flow.Totals(sess.Cart, sf.Pricing),
	}
}

// checkoutSession returns the session with a checkout in progress
func checkoutSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := currentSession(c)
	if !ok {
		return nil, false
	}
	if sess.Checkout == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return nil, false
	}
	return sess, true
}

// HandleBeginCheckout handles POST /api/storefront/checkout
func HandleBeginCheckout(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		flow, err := checkout.Begin(sess.Cart, sess.Authenticated())
		if err != nil {
			abort(c, sf.Logger, "Failed to begin checkout", err)
			return
		}

		if sess.Checkout == nil {
			sess.Checkout = flow
			if !sf.persist(c) {
				return
			}
		}
		c.JSON(http.StatusOK, sf.checkoutView(sess))
	}
}

// HandleGetCheckout handles GET /api/storefront/checkout
func HandleGetCheckout(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := checkoutSession(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sf.checkoutView(sess))
	}
}

// HandleSetShipping handles PUT /api/storefront/checkout/shipping
func HandleSetShipping(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := checkoutSession(c)
		if !ok {
			return
		}

		var address domain.Address
		if err := c.ShouldBindJSON(&address); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if address.Country == "" {
			address.Country = checkout.DefaultCountry
		}

		sess.Checkout.Shipping = address
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, sf.checkoutView(sess))
	}
}

// HandleSetPayment handles PUT /api/storefront/checkout/payment
func HandleSetPayment(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := checkoutSession(c)
		if !ok {
			return
		}

		var payment PaymentRequest
		if err := c.ShouldBindJSON(&payment); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		sess.Checkout.Payment = payment.Payment
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, sf.checkoutView(sess))
	}
}

// HandleCheckoutStep handles POST /api/storefront/checkout/next and /back
func HandleCheckoutStep(sf *Storefront, forward bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := checkoutSession(c)
		if !ok {
			return
		}

		var moved bool
		if forward {
			moved = sess.Checkout.Next()
		} else {
			moved = sess.Checkout.Back()
		}
		if moved && !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, sf.checkoutView(sess))
	}
}

// HandleSubmitOrder handles POST /api/storefront/checkout/submit
func HandleSubmitOrder(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := signedInUserID(c)
		if !ok {
			return
		}
		sess, ok := checkoutSession(c)
		if !ok {
			return
		}

		confirmation, err := sess.Checkout.Submit(
			c.Request.Context(),
			userID,
			sess.Cart,
			sf.Pricing,
			sf.Submitter,
			sf.Logger,
		)
		if err != nil {
			abort(c, sf.Logger, "Failed to place order", err)
			return
		}

		sess.Checkout = nil
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusCreated, confirmation)
	}
}
