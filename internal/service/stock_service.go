package service

import (
	"context"
	goerrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/cart"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/pkg/errors"
)

type stockService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(repos *repository.Repositories, logger *zap.Logger) *stockService {
	return &stockService{
		repos:  repos,
		logger: logger,
	}
}

// CheckAvailability verifies that every line refers to an active product
// with enough stock. The first failing line is reported as a validation error.
func (s *stockService) CheckAvailability(ctx context.Context, lines []cart.Line) error {
	for _, line := range lines {
		product, err := s.repos.Product.GetByID(ctx, line.ProductID)
		if err != nil {
			var notFound *errors.ErrNotFound
			if goerrors.As(err, &notFound) {
				return &errors.ErrValidation{
					Field:   "items",
					Message: fmt.Sprintf("%s is no longer available", line.Name),
				}
			}
			return err
		}

		if !product.Active() || product.QtyAvailable <= 0 {
			s.logger.Info("Cart line out of stock", zap.Int64("product_id", line.ProductID))
			return &errors.ErrValidation{
				Field:   "items",
				Message: fmt.Sprintf("%s is out of stock", product.Title),
			}
		}
		if product.QtyAvailable < line.Quantity {
			return &errors.ErrValidation{
				Field:   "items",
				Message: fmt.Sprintf("only %d of %s left in stock", product.QtyAvailable, product.Title),
			}
		}
	}
	return nil
}
