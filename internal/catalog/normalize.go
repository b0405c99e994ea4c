// Package catalog turns backend product records into storefront view models
// and answers filter/sort queries over them.
package catalog

import (
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/money"
)

// DefaultCategory is assigned to records that carry no category
const DefaultCategory = "General"

// Product is the view model shown by catalog, detail and cart screens
type Product struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Image         string       `json:"image"`
	Price         float64      `json:"price"`
	StockQuantity int          `json:"stockQuantity"`
	InStock       bool         `json:"inStock"`
	Rating        float64      `json:"rating"`
	ReviewCount   int          `json:"reviewCount"`
	Category      string       `json:"category"`
	Specs         domain.Specs `json:"specs"`
}

// NormalizeProduct maps a backend record to its view model. A nil record
// yields nil.
func NormalizeProduct(raw *domain.Product) *Product {
	if raw == nil {
		return nil
	}

	stock := raw.QtyAvailable
	if stock < 0 {
		stock = 0
	}

	category := raw.Category
	if category == "" {
		category = DefaultCategory
	}

	rating := raw.Rating
	if rating < 0 {
		rating = 0
	}
	reviews := raw.ReviewCount
	if reviews < 0 {
		reviews = 0
	}

	return &Product{
		ID:            raw.ID,
		Name:          raw.Title,
		Description:   raw.Description,
		Image:         raw.ImageURL,
		Price:         money.Cents(raw.BasePriceCents).Dollars(),
		StockQuantity: stock,
		InStock:       stock > 0 && raw.Active(),
		Rating:        rating,
		ReviewCount:   reviews,
		Category:      category,
		Specs:         raw.Specs,
	}
}

// NormalizeAll normalizes records in order, skipping nil entries.
func NormalizeAll(raws []*domain.Product) []Product {
	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		if p := NormalizeProduct(raw); p != nil {
			out = append(out, *p)
		}
	}
	return out
}
