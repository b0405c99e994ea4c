package catalog

import (
	"math"
	"sort"
	"strings"
)

// SortKey selects the catalog ordering
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

// Criteria are the catalog filters. Zero values mean "no filter" for
// every dimension.
type Criteria struct {
	Category  string  `form:"category" json:"category"`
	MinPrice  float64 `form:"minPrice" json:"minPrice"`
	MaxPrice  float64 `form:"maxPrice" json:"maxPrice"`
	MinRating float64 `form:"minRating" json:"minRating"`
	InStock   bool    `form:"inStock" json:"inStock"`
	SortBy    SortKey `form:"sortBy" json:"sortBy"`
	Search    string  `form:"search" json:"search"`
}

// DefaultCriteria is the state of a freshly opened catalog view.
func DefaultCriteria() Criteria {
	return Criteria{
		MaxPrice: 500,
		SortBy:   SortFeatured,
	}
}

// Query filters then sorts products. The input slice is left untouched.
func Query(products []Product, c Criteria) []Product {
	search := strings.ToLower(c.Search)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !c.matches(p, search) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, c.SortBy)
	return out
}

func (c Criteria) matches(p Product, search string) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if usable(c.MinPrice) && p.Price < c.MinPrice {
		return false
	}
	if usable(c.MaxPrice) && p.Price > c.MaxPrice {
		return false
	}
	if usable(c.MinRating) && p.Rating < c.MinRating {
		return false
	}
	if c.InStock && !p.InStock {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(strings.ToLower(p.Description), search) {
		return false
	}
	return true
}

// usable reports whether a numeric bound should filter at all.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}

// Related returns up to limit other products in the same category.
func Related(products []Product, id int64, limit int) []Product {
	var target *Product
	for i := range products {
		if products[i].ID == id {
			target = &products[i]
			break
		}
	}
	if target == nil {
		return []Product{}
	}

	out := make([]Product, 0, limit)
	for _, p := range products {
		if len(out) >= limit {
			break
		}
		if p.ID != id && p.Category == target.Category {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns up to limit in-stock products, best rated first.
func Featured(products []Product, limit int) []Product {
	out := Query(products, Criteria{InStock: true, SortBy: SortRating})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Find returns the product with id, or nil.
func Find(products []Product, id int64) *Product {
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p
		}
	}
	return nil
}
