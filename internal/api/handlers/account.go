package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/api/middleware"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/service"
	"github.com/inkhouse/storefront/internal/session"
)

func sessionUser(u *domain.User) session.User {
	return session.User{ID: u.ID, Email: u.Email, Name: u.FullName}
}

func (sf *Storefront) signIn(c *gin.Context, sess *session.Session, result *service.AuthResult, status int) {
	sess.SignIn(sessionUser(result.User), result.Token)
	if err := middleware.RotateSession(c); err != nil {
		sf.Logger.Error("Failed to rotate session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{
		"user":  sess.User,
		"token": result.Token,
	})
}

// HandleSignUp handles POST /api/storefront/account/sign-up
func HandleSignUp(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.SignUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		result, err := sf.Accounts.SignUp(c.Request.Context(), req)
		if err != nil {
			abort(c, sf.Logger, "Failed to sign up", err)
			return
		}
		sf.signIn(c, sess, result, http.StatusCreated)
	}
}

// HandleSignIn handles POST /api/storefront/account/sign-in
func HandleSignIn(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		var req service.SignInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		result, err := sf.Accounts.SignIn(c.Request.Context(), req)
		if err != nil {
			abort(c, sf.Logger, "Failed to sign in", err)
			return
		}
		sf.signIn(c, sess, result, http.StatusOK)
	}
}

// HandleSignOut handles POST /api/storefront/account/sign-out
func HandleSignOut(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}

		sess.SignOut()
		if !sf.persist(c) {
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleGetProfile handles GET /api/storefront/account
func HandleGetProfile(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := signedInUserID(c)
		if !ok {
			return
		}

		user, err := sf.Accounts.Profile(c.Request.Context(), userID)
		if err != nil {
			abort(c, sf.Logger, "Failed to load profile", err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// HandleUpdateProfile handles PUT /api/storefront/account
func HandleUpdateProfile(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		userID, ok := signedInUserID(c)
		if !ok {
			return
		}

		var req service.ProfileUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, err := sf.Accounts.UpdateProfile(c.Request.Context(), userID, req)
		if err != nil {
			abort(c, sf.Logger, "Failed to update profile", err)
			return
		}

		updated := sessionUser(user)
		sess.User = &updated
		if !sf.persist(c) {
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// HandleOrderHistory handles GET /api/storefront/account/orders
func HandleOrderHistory(sf *Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := signedInUserID(c)
		if !ok {
			return
		}

		orders, err := sf.Orders.ListByUser(c.Request.Context(), userID)
		if err != nil {
			abort(c, sf.Logger, "Failed to load orders", err)
			return
		}

		summaries := make([]service.OrderSummary, 0, len(orders))
		for _, order := range orders {
			summaries = append(summaries, service.Summarize(order))
		}
		c.JSON(http.StatusOK, gin.H{"orders": summaries})
	}
}
