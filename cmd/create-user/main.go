package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/config"
	"github.com/inkhouse/storefront/internal/repository/postgres"
	"github.com/inkhouse/storefront/internal/service"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/create-user/main.go <email> <password> [full-name]")
		fmt.Println("Example: go run cmd/create-user/main.go \"ada@example.com\" \"hunter22\" \"Ada Lovelace\"")
		os.Exit(1)
	}

	req := service.SignUpRequest{
		Email:    os.Args[1],
		Password: os.Args[2],
	}
	if len(os.Args) > 3 {
		req.Name = os.Args[3]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	// Register hashes the password with bcrypt
	user, err := service.NewUserService(repos, nil, logger).Register(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ User created successfully!\n\n")
	fmt.Printf("User ID: %d\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Name: %s\n", user.FullName)
	fmt.Printf("\nSign in at POST /api/storefront/account/sign-in with this email and password.\n")
}
