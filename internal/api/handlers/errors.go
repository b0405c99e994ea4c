package handlers

import (
	goerrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/cart"
	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/checkout"
	"github.com/inkhouse/storefront/pkg/errors"
)

// statusFor maps an error to an HTTP status and a client-safe message
func statusFor(err error) (int, string) {
	var (
		notFound   *errors.ErrNotFound
		validation *errors.ErrValidation
		unauth     *errors.ErrUnauthorized
		transition *errors.ErrInvalidStateTransition
		upstream   *errors.HTTPError
	)

	switch {
	case goerrors.As(err, &notFound):
		return http.StatusNotFound, fmt.Sprintf("%s not found", notFound.Resource)
	case goerrors.As(err, &validation):
		return http.StatusUnprocessableEntity, validation.Message
	case goerrors.As(err, &unauth):
		return http.StatusUnauthorized, unauth.Error()
	case goerrors.As(err, &transition):
		return http.StatusBadRequest, transition.Error()
	case goerrors.As(err, &upstream):
		return http.StatusBadGateway, upstream.Error()
	case goerrors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, err.Error()
	case goerrors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound, err.Error()
	case goerrors.Is(err, checkout.ErrNotAuthenticated):
		return http.StatusUnauthorized, err.Error()
	case goerrors.Is(err, checkout.ErrEmptyCart), goerrors.Is(err, checkout.ErrNotAtReview):
		return http.StatusConflict, err.Error()
	case goerrors.Is(err, catalog.ErrStale):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// abort writes err as {"error": ...}, logging anything unexpected
func abort(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status, text := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": text})
}

// abortMessage writes err as {"message": ...} for REST backend callers
func abortMessage(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status, text := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"message": text})
}
