package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Session     SessionConfig
	Backend     BackendConfig
	Auth        AuthConfig
	Checkout    CheckoutConfig
	Catalog     CatalogConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Driver         string // postgres or memory
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Store string // redis or memory
	TTL   time.Duration
}

// BackendConfig points the storefront at a remote REST backend. When BaseURL
// is empty the storefront uses this process's own repositories.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRateBasis          int
}

type CatalogConfig struct {
	FixturesPath string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}
	sessionTTL, err := time.ParseDuration(getEnvOrViper("SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	backendTimeout, err := time.ParseDuration(getEnvOrViper("BACKEND_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("BACKEND_TIMEOUT: %w", err)
	}
	tokenTTL, err := time.ParseDuration(getEnvOrViper("TOKEN_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	threshold, err := decimal.NewFromString(getEnvOrViper("FREE_SHIPPING_THRESHOLD", "100"))
	if err != nil {
		return nil, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err)
	}
	shippingFee, err := decimal.NewFromString(getEnvOrViper("SHIPPING_FEE", "9.99"))
	if err != nil {
		return nil, fmt.Errorf("SHIPPING_FEE: %w", err)
	}
	taxBasis, err := strconv.Atoi(getEnvOrViper("TAX_RATE_BASIS", "825"))
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE_BASIS must be an integer: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Driver:         getEnvOrViper("STORAGE_DRIVER", "postgres"),
			Host:           getEnvOrViper("DB_HOST", "localhost"),
			Port:           getEnvOrViper("DB_PORT", "5432"),
			User:           getEnvOrViper("DB_USER", "postgres"),
			Password:       getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:         getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:        getEnvOrViper("DB_SSLMODE", "disable"),
			MigrationsPath: getEnvOrViper("DB_MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Session: SessionConfig{
			Store: getEnvOrViper("SESSION_STORE", "redis"),
			TTL:   sessionTTL,
		},
		Backend: BackendConfig{
			BaseURL: getEnvOrViper("BACKEND_BASE_URL", ""),
			Timeout: backendTimeout,
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrViper("JWT_SECRET", "default-secret-change-in-production"),
			TokenTTL:  tokenTTL,
		},
		Checkout: CheckoutConfig{
			FreeShippingThreshold: threshold,
			ShippingFee:           shippingFee,
			TaxRateBasis:          taxBasis,
		},
		Catalog: CatalogConfig{
			FixturesPath: getEnvOrViper("CATALOG_FIXTURES", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "memory" {
		return nil, fmt.Errorf("STORAGE_DRIVER must be postgres or memory, got %q", cfg.Database.Driver)
	}
	if cfg.Session.Store != "redis" && cfg.Session.Store != "memory" {
		return nil, fmt.Errorf("SESSION_STORE must be redis or memory, got %q", cfg.Session.Store)
	}
	if cfg.Environment == "production" && os.Getenv("JWT_SECRET") == "" && !viper.IsSet("JWT_SECRET") {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	if cfg.Checkout.TaxRateBasis < 0 {
		return nil, fmt.Errorf("TAX_RATE_BASIS must not be negative")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
