package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/internal/service"
)

// AddUserRequest is the backend account creation payload
type AddUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

// HandleGetUsers handles GET /api/users/getUsers
func HandleGetUsers(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := service.NewUserService(repos, nil, logger).List(c.Request.Context())
		if err != nil {
			abortMessage(c, logger, "Failed to list users", err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// HandleAddUser handles POST /api/users/addUser
func HandleAddUser(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "validation failed",
				"details": err.Error(),
			})
			return
		}

		_, err := service.NewUserService(repos, nil, logger).Register(c.Request.Context(), service.SignUpRequest{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.FullName,
		})
		if err != nil {
			abortMessage(c, logger, "Failed to add user", err)
			return
		}
		c.String(http.StatusOK, "User has been added")
	}
}
