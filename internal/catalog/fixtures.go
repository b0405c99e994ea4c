package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inkhouse/storefront/internal/domain"
)

//go:embed fixtures/products.yaml
var defaultFixtures []byte

type fixtureFile struct {
	Products []fixtureProduct `yaml:"products"`
}

type fixtureProduct struct {
	ID             int64     `yaml:"id"`
	Title          string    `yaml:"title"`
	Description    string    `yaml:"description"`
	ImageURL       string    `yaml:"imageUrl"`
	BasePriceCents int64     `yaml:"basePriceCents"`
	QtyAvailable   int       `yaml:"qtyAvailable"`
	IsActive       *bool     `yaml:"isActive"`
	Category       string    `yaml:"category"`
	Rating         float64   `yaml:"rating"`
	ReviewCount    int       `yaml:"reviewCount"`
	Specs          yaml.Node `yaml:"specs"`
}

// DefaultFixtures returns the built-in seed catalog
func DefaultFixtures() ([]*domain.Product, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads a seed catalog from a YAML file. An empty path loads the
// built-in catalog.
func LoadFixtures(path string) ([]*domain.Product, error) {
	if path == "" {
		return DefaultFixtures()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes a YAML seed catalog
func ParseFixtures(data []byte) ([]*domain.Product, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	now := time.Now().UTC()
	products := make([]*domain.Product, 0, len(file.Products))
	for i, fp := range file.Products {
		specs, err := specsFromNode(&fp.Specs)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		products = append(products, &domain.Product{
			ID:             fp.ID,
			Title:          fp.Title,
			Description:    fp.Description,
			ImageURL:       fp.ImageURL,
			BasePriceCents: fp.BasePriceCents,
			QtyAvailable:   fp.QtyAvailable,
			IsActive:       fp.IsActive,
			Category:       fp.Category,
			Rating:         fp.Rating,
			ReviewCount:    fp.ReviewCount,
			Specs:          specs,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return products, nil
}

// specsFromNode keeps the mapping's key order.
func specsFromNode(node *yaml.Node) (domain.Specs, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("specs must be a mapping, got kind %d", node.Kind)
	}

	specs := make(domain.Specs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		specs = append(specs, domain.Spec{
			Label: node.Content[i].Value,
			Value: node.Content[i+1].Value,
		})
	}
	return specs, nil
}
