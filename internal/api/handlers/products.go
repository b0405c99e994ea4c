package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/internal/service"
)

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + param})
		return 0, false
	}
	return id, true
}

// HandleListProducts handles GET /api/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := service.NewProductService(repos, logger).List(c.Request.Context())
		if err != nil {
			abortMessage(c, logger, "Failed to list products", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// HandleGetProduct handles GET /api/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		product, err := service.NewProductService(repos, logger).Get(c.Request.Context(), id)
		if err != nil {
			abortMessage(c, logger, "Failed to get product", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleSearchProducts handles GET /api/products/search?name=
func HandleSearchProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := service.NewProductService(repos, logger).Search(c.Request.Context(), c.Query("name"))
		if err != nil {
			abortMessage(c, logger, "Failed to search products", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// HandleCreateProduct handles POST /api/products
func HandleCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		product, err := service.NewProductService(repos, logger).Create(c.Request.Context(), req)
		if err != nil {
			abortMessage(c, logger, "Failed to create product", err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// HandleUpdateProduct handles PUT /api/products/:id
func HandleUpdateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req service.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		product, err := service.NewProductService(repos, logger).Update(c.Request.Context(), id, req)
		if err != nil {
			abortMessage(c, logger, "Failed to update product", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleDeleteProduct handles DELETE /api/products/:id
func HandleDeleteProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		if err := service.NewProductService(repos, logger).Delete(c.Request.Context(), id); err != nil {
			abortMessage(c, logger, "Failed to delete product", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
