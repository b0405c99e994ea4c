package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/api/handlers"
	"github.com/inkhouse/storefront/internal/api/middleware"
	"github.com/inkhouse/storefront/internal/auth"
	"github.com/inkhouse/storefront/internal/client"
	"github.com/inkhouse/storefront/internal/config"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	sf *handlers.Storefront,
	sessions session.Store,
	tokens *auth.Tokens,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(schemaMiddleware())
	{
		products := api.Group("/products")
		{
			products.GET("", handlers.HandleListProducts(repos, logger))
			products.GET("/search", handlers.HandleSearchProducts(repos, logger))
			products.GET("/:id", handlers.HandleGetProduct(repos, logger))
			products.POST("", handlers.HandleCreateProduct(repos, logger))
			products.PUT("/:id", handlers.HandleUpdateProduct(repos, logger))
			products.DELETE("/:id", handlers.HandleDeleteProduct(repos, logger))
		}

		orders := api.Group("/orders")
		{
			orders.GET("", handlers.HandleListOrders(cfg, repos, logger))
			orders.GET("/user/:userId", handlers.HandleListUserOrders(cfg, repos, logger))
			orders.GET("/:id", handlers.HandleGetOrder(cfg, repos, logger))
			orders.POST("", handlers.HandleCreateOrder(cfg, repos, logger))
			orders.PATCH("/:id/status", handlers.HandleUpdateOrderStatus(cfg, repos, logger))
			orders.DELETE("/:id", handlers.HandleDeleteOrder(cfg, repos, logger))
		}

		users := api.Group("/users")
		{
			users.GET("/getUsers", handlers.HandleGetUsers(repos, logger))
			users.POST("/addUser", handlers.HandleAddUser(repos, logger))
		}
	}

	storefront := router.Group("/api/storefront")
	storefront.Use(middleware.SessionMiddleware(sessions, logger))
	{
		storefront.GET("/catalog", handlers.HandleCatalog(sf))
		storefront.GET("/catalog/categories", handlers.HandleCategories(sf))
		storefront.GET("/catalog/featured", handlers.HandleFeatured(sf))
		storefront.GET("/products/:id", handlers.HandleProductDetail(sf))

		storefront.GET("/cart", handlers.HandleGetCart(sf))
		storefront.DELETE("/cart", handlers.HandleClearCart(sf))
		storefront.GET("/cart/count", handlers.HandleCartCount(sf))
		storefront.POST("/cart/items", handlers.HandleAddToCart(sf))
		storefront.PUT("/cart/items/:id", handlers.HandleUpdateCartItem(sf))
		storefront.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(sf))

		storefront.POST("/checkout", handlers.HandleBeginCheckout(sf))
		storefront.GET("/checkout", handlers.HandleGetCheckout(sf))
		storefront.PUT("/checkout/shipping", handlers.HandleSetShipping(sf))
		storefront.PUT("/checkout/payment", handlers.HandleSetPayment(sf))
		storefront.POST("/checkout/next", handlers.HandleCheckoutStep(sf, true))
		storefront.POST("/checkout/back", handlers.HandleCheckoutStep(sf, false))

		storefront.POST("/account/sign-up", handlers.HandleSignUp(sf))
		storefront.POST("/account/sign-in", handlers.HandleSignIn(sf))
		storefront.POST("/account/sign-out", handlers.HandleSignOut(sf))

		// Routes that need a signed-in user
		signedIn := storefront.Group("")
		signedIn.Use(middleware.AuthMiddleware(tokens, logger))
		{
			signedIn.POST("/checkout/submit", handlers.HandleSubmitOrder(sf))
			signedIn.GET("/account", handlers.HandleGetProfile(sf))
			signedIn.PUT("/account", handlers.HandleUpdateProfile(sf))
			signedIn.GET("/account/orders", handlers.HandleOrderHistory(sf))
		}
	}

	return router
}

// schemaMiddleware stamps backend responses with the record schema version
func schemaMiddleware() gin.HandlerFunc {
	version := strconv.Itoa(domain.SchemaVersion)
	return func(c *gin.Context) {
		c.Header(client.SchemaHeader, version)
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
