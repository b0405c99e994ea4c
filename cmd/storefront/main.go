package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inkhouse/storefront/internal/api"
	"github.com/inkhouse/storefront/internal/api/handlers"
	"github.com/inkhouse/storefront/internal/auth"
	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/client"
	"github.com/inkhouse/storefront/internal/config"
	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/internal/repository/memory"
	"github.com/inkhouse/storefront/internal/repository/postgres"
	"github.com/inkhouse/storefront/internal/service"
	"github.com/inkhouse/storefront/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	repos, db, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	sessions, closeSessions, err := openSessions(cfg)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}
	defer closeSessions()

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sf := newStorefront(cfg, repos, tokens, logger)
	router := api.NewRouter(cfg, repos, sf, sessions, tokens, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Storefront listening",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Bool("remote_backend", cfg.Backend.BaseURL != ""),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down storefront")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// openRepositories returns the db handle only for the postgres driver
func openRepositories(cfg *config.Config, logger *zap.Logger) (*repository.Repositories, *sql.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Connected to postgres",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.DBName),
		)
		return postgres.NewRepositories(db, logger), db, nil
	case "memory":
		products, err := loadSeed(cfg.Catalog.FixturesPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using in-memory storage", zap.Int("products", len(products)))
		return memory.NewRepositories(products), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Database.Driver)
	}
}

func loadSeed(path string) ([]*domain.Product, error) {
	if path == "" {
		return catalog.DefaultFixtures()
	}
	return catalog.LoadFixtures(path)
}

func openSessions(cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return session.NewRedisStore(rdb, cfg.Session.TTL), func() { rdb.Close() }, nil
	case "memory":
		return session.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// newStorefront wires the storefront to the remote backend when one is
// configured, and to the local services otherwise. Accounts always use the
// local user table.
func newStorefront(cfg *config.Config, repos *repository.Repositories, tokens *auth.Tokens, logger *zap.Logger) *handlers.Storefront {
	pricing := handlers.PricingFromConfig(cfg)
	sf := &handlers.Storefront{
		Accounts: service.NewUserService(repos, tokens, logger),
		Pricing:  pricing,
		Logger:   logger,
	}

	if cfg.Backend.BaseURL != "" {
		backend := client.NewClient(cfg.Backend, logger)
		sf.Loader = catalog.NewLoader(backend, logger)
		sf.Submitter = backend
		sf.Orders = backend
		return sf
	}

	orders := service.NewOrderService(repos, pricing, cfg.Checkout.TaxRateBasis, logger)
	sf.Loader = catalog.NewLoader(service.NewProductService(repos, logger), logger)
	sf.Submitter = service.NewLocalSubmitter(orders, service.NewStockService(repos, logger))
	sf.Orders = orders
	return sf
}
