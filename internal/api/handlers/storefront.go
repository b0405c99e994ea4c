package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/api/middleware"
	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/service"
	"github.com/inkhouse/storefront/internal/session"
)

const (
	relatedLimit  = 4
	featuredLimit = 6
)

// Accounts signs users in and manages their profile
type Accounts interface {
	SignUp(ctx context.Context, req service.SignUpRequest) (*service.AuthResult, error)
	SignIn(ctx context.Context, req service.SignInRequest) (*service.AuthResult, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, update service.ProfileUpdate) (*domain.User, error)
}

// OrderLister serves a user's order history
type OrderLister interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
}

// Storefront is what the /api/storefront handlers work with. Loader,
// Submitter and Orders are backed either by this process's repositories or
// by the remote REST backend.
type Storefront struct {
	Loader    *catalog.Loader
	Submitter checkout.Submitter
	Orders    OrderLister
	Accounts  Accounts
	Pricing   checkout.Pricing
	Logger    *zap.Logger
}

// currentSession fetches the session, writing a 500 when the middleware did not run
func currentSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	return sess, true
}

// signedInUserID returns the user id from the verified token claims
func signedInUserID(c *gin.Context) (int64, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return 0, false
	}
	return claims.UserID, true
}

// persist writes the session through before responding
func (sf *Storefront) persist(c *gin.Context) bool {
	if err := middleware.SaveSession(c); err != nil {
		sf.Logger.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return false
	}
	return true
}

type catalogResponse struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
	Criteria catalog.Criteria  `json:"criteria"`
}

// HandleCatalog handles GET /api/storefront/catalog
func HandleCatalog(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		criteria := catalog.DefaultCriteria()
		if err := c.ShouldBindQuery(&criteria); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog filters"})
			return
		}

		products, err := sf.Loader.Load(c.Request.Context(), sess.ID, criteria)
		if err != nil {
			abort(c, sf.Logger, "Failed to load catalog", err)
			return
		}

		c.JSON(http.StatusOK, catalogResponse{
			Products: products,
			Count:    len(products),
			Criteria: criteria,
		})
	}
}

// HandleCategories handles GET /api/storefront/catalog/categories
func HandleCategories(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := sf.Loader.All(c.Request.Context())
		if err != nil {
			abort(c, sf.Logger, "Failed to load categories", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories(products)})
	}
}

// HandleFeatured handles GET /api/storefront/catalog/featured
func HandleFeatured(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := sf.Loader.All(c.Request.Context())
		if err != nil {
			abort(c, sf.Logger, "Failed to load featured products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": catalog.Featured(products, featuredLimit)})
	}
}

// HandleProductDetail handles GET /api/storefront/products/:id
func HandleProductDetail(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		products, err := sf.Loader.All(c.Request.Context())
		if err != nil {
			abort(c, sf.Logger, "Failed to load product", err)
			return
		}

		product := catalog.Find(products, id)
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product": product,
			"related": catalog.Related(products, id, relatedLimit),
		})
	}
}
