package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/internal/config"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/internal/service"
)

// PricingFromConfig builds the shipping rule from configuration
func PricingFromConfig(cfg *config.Config) checkout.Pricing {
	return checkout.Pricing{
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
		ShippingFee:           cfg.Checkout.ShippingFee,
	}
}

// HandleListOrders handles GET /api/orders
func HandleListOrders(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderService := service.NewOrderService(repos, PricingFromConfig(cfg), cfg.Checkout.TaxRateBasis, logger)
		orders, err := orderService.List(c.Request.Context())
		if err != nil {
			abortMessage(c, logger, "Failed to list orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// HandleGetOrder handles GET /api/orders/:id
func HandleGetOrder(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		orderService := service.NewOrderService(repos, PricingFromConfig(cfg), cfg.Checkout.TaxRateBasis, logger)
		order, err := orderService.Get(c.Request.Context(), id)
		if err != nil {
			abortMessage(c, logger, "Failed to get order", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleListUserOrders handles GET /api/orders/user/:userId
func HandleListUserOrders(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseID(c, "userId")
		if !ok {
			return
		}

		orderService := service.NewOrderService(repos, PricingFromConfig(cfg), cfg.Checkout.TaxRateBasis, logger)
		orders, err := orderService.ListByUser(c.Request.Context(), userID)
		if err != nil {
			abortMessage(c, logger, "Failed to list user orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// HandleCreateOrder handles POST /api/orders
func HandleCreateOrder(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkout.OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := service.NewStockService(repos, logger).CheckAvailability(c.Request.Context(), req.Items); err != nil {
			abortMessage(c, logger, "Failed to check stock", err)
			return
		}

		orderService := service.NewOrderService(repos, PricingFromConfig(cfg), cfg.Checkout.TaxRateBasis, logger)
		order, err := orderService.CreateOrder(c.Request.Context(), req)
		if err != nil {
			abortMessage(c, logger, "Failed to create order", err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// HandleUpdateOrderStatus handles PATCH /api/orders/:id/status?status=
func HandleUpdateOrderStatus(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		orderService := service.NewOrderService(repos, PricingFromConfig(cfg), cfg.Checkout.TaxRateBasis, logger)
		order, err := orderService.UpdateStatus(c.Request.Context(), id, c.Query("status"))
		if err != nil {
			abortMessage(c, logger, "Failed to update order status", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleDeleteOrder handles DELETE /api/orders/:id
func HandleDeleteOrder(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		orderService := service.NewOrderService(repos, PricingFromConfig(cfg), cfg.Checkout.TaxRateBasis, logger)
		if err := orderService.Delete(c.Request.Context(), id); err != nil {
			abortMessage(c, logger, "Failed to delete order", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
