package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/client"
	"github.com/inkhouse/storefront/internal/config"
	"github.com/inkhouse/storefront/internal/money"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-product/main.go <title>")
		fmt.Println("Example: go run cmd/find-product/main.go \"uncle sam\"")
		os.Exit(1)
	}

	title := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Backend.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "BACKEND_BASE_URL is required")
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	backend := client.NewClient(cfg.Backend, logger)

	fmt.Printf("🔍 Searching for: %s\n\n", title)

	raws, err := backend.SearchProducts(context.Background(), title)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}

	products := catalog.NormalizeAll(raws)
	if len(products) == 0 {
		fmt.Printf("❌ No product matching %q\n", title)
		os.Exit(1)
	}

	for _, p := range products {
		stock := "out of stock"
		if p.InStock {
			stock = fmt.Sprintf("%d in stock", p.StockQuantity)
		}
		fmt.Printf("✅ #%d %s\n", p.ID, p.Name)
		fmt.Printf("   Price: %s\n", money.FormatCurrency(p.Price))
		fmt.Printf("   Category: %s\n", p.Category)
		fmt.Printf("   Stock: %s\n\n", stock)
	}
}
