// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Admin       AdminConfig
	Catalog     CatalogConfig
	KV          KVConfig
	Redis       RedisConfig
	AWS         AWSConfig
	Checkout    CheckoutConfig
	Storefront  StorefrontConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type AdminConfig struct {
	// Password gates the back-office; it also signs session tokens unless
	// a dedicated secret is configured.
	Password      string
	SessionSecret string
}

type CatalogConfig struct {
	// Backend selects where the product document lives: "seed" (built-in
	// catalog, writes not durable), "file", or "s3".
	Backend  string
	FilePath string
	S3Bucket string
	S3Key    string
}

type KVConfig struct {
	// Backend selects cart/account persistence: "memory", "file",
	// "redis", or "sqlite".
	Backend    string
	Dir        string
	SQLitePath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type CheckoutConfig struct {
	// Provider selects the checkout handoff: "mock", "shopify", or
	// "stripe".
	Provider             string
	ShopifyDomain        string
	ShopifyToken         string
	StripeSecretKey      string
	StripePublishableKey string
	SuccessURL           string
	CancelURL            string
}

type StorefrontConfig struct {
	SiteName              string
	BookingURL            string
	FreeShippingThreshold float64
	FlatShippingRate      float64
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Admin: AdminConfig{
			Password:      getEnv("ADMIN_PASSWORD", "dev-password-change-me"),
			SessionSecret: getEnv("ADMIN_SESSION_SECRET", ""),
		},
		Catalog: CatalogConfig{
			Backend:  getEnv("CATALOG_BACKEND", "seed"),
			FilePath: getEnv("CATALOG_FILE_PATH", "./data/products.json"),
			S3Bucket: getEnv("CATALOG_S3_BUCKET", ""),
			S3Key:    getEnv("CATALOG_S3_KEY", "products.json"),
		},
		KV: KVConfig{
			Backend:    getEnv("KV_BACKEND", "memory"),
			Dir:        getEnv("KV_DIR", "./data/kv"),
			SQLitePath: getEnv("KV_SQLITE_PATH", "./data/kv.db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Checkout: CheckoutConfig{
			Provider:             getEnv("CHECKOUT_PROVIDER", "mock"),
			ShopifyDomain:        getEnv("SHOPIFY_STORE_DOMAIN", ""),
			ShopifyToken:         getEnv("SHOPIFY_STOREFRONT_ACCESS_TOKEN", ""),
			StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SuccessURL:           getEnv("CHECKOUT_SUCCESS_URL", "/checkout/success"),
			CancelURL:            getEnv("CHECKOUT_CANCEL_URL", "/cart"),
		},
		Storefront: StorefrontConfig{
			SiteName:              getEnv("SITE_NAME", "New Era Studio"),
			BookingURL:            getEnv("BOOKING_URL", "https://newerastudios.glossgenius.com/booking-flow"),
			FreeShippingThreshold: getEnvAsFloat("FREE_SHIPPING_THRESHOLD", 150),
			FlatShippingRate:      getEnvAsFloat("FLAT_SHIPPING_RATE", 9.99),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" && c.Admin.Password == "dev-password-change-me" {
		return fmt.Errorf("admin password must be changed in production")
	}

	switch c.Catalog.Backend {
	case "seed", "file", "s3":
	default:
		return fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend)
	}

	switch c.KV.Backend {
	case "memory", "file", "redis", "sqlite":
	default:
		return fmt.Errorf("unknown kv backend %q", c.KV.Backend)
	}

	if c.Catalog.Backend == "s3" && c.Catalog.S3Bucket == "" {
		return fmt.Errorf("catalog backend s3 requires CATALOG_S3_BUCKET")
	}

	return nil
}

// SessionSecret returns the secret used to sign admin session tokens,
// falling back to the admin password when no dedicated secret is set.
func (c *Config) SessionSecret() string {
	if c.Admin.SessionSecret != "" {
		return c.Admin.SessionSecret
	}
	return c.Admin.Password
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
