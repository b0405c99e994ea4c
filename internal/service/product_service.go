package service

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/money"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/pkg/errors"
)

type productService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repos *repository.Repositories, logger *zap.Logger) *productService {
	return &productService{
		repos:  repos,
		logger: logger,
	}
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repos.Product.List(ctx)
}

// ListProducts lets the service act as a catalog source
func (s *productService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repos.Product.List(ctx)
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repos.Product.GetByID(ctx, id)
}

// Search matches titles case-insensitively
func (s *productService) Search(ctx context.Context, name string) ([]*domain.Product, error) {
	return s.repos.Product.SearchByTitle(ctx, strings.TrimSpace(name))
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	product := &domain.Product{}
	if err := applyInput(product, in); err != nil {
		return nil, err
	}

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("title", product.Title),
	)
	return product, nil
}

// Update replaces the editable fields of an existing product
func (s *productService) Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyInput(product, in); err != nil {
		return nil, err
	}

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Product.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func applyInput(product *domain.Product, in ProductInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return &errors.ErrValidation{Field: "title", Message: "Title is required"}
	}

	var cents int64
	switch {
	case in.BasePriceCents != nil && *in.BasePriceCents >= 0:
		cents = *in.BasePriceCents
	case in.BasePriceCents == nil && in.Price != nil && *in.Price >= 0 && !math.IsInf(*in.Price, 0) && !math.IsNaN(*in.Price):
		cents = int64(money.FromDollars(*in.Price))
	default:
		return &errors.ErrValidation{Field: "price", Message: "Valid price is required"}
	}

	if in.QtyAvailable == nil || *in.QtyAvailable < 0 {
		return &errors.ErrValidation{Field: "qtyAvailable", Message: "Valid quantity is required"}
	}

	if in.Rating < 0 || in.Rating > 5 || math.IsNaN(in.Rating) {
		return &errors.ErrValidation{Field: "rating", Message: "Rating must be between 0 and 5"}
	}
	if in.ReviewCount < 0 {
		return &errors.ErrValidation{Field: "reviewCount", Message: "Review count must not be negative"}
	}

	product.Title = title
	product.Description = in.Description
	product.ImageURL = in.ImageURL
	product.BasePriceCents = cents
	product.QtyAvailable = *in.QtyAvailable
	product.Category = strings.TrimSpace(in.Category)
	product.Rating = in.Rating
	product.ReviewCount = in.ReviewCount
	product.Specs = in.Specs

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	product.IsActive = &active
	return nil
}
