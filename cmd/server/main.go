// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/newerastudio/storefront/internal/cache"
	"github.com/newerastudio/storefront/internal/checkout"
	"github.com/newerastudio/storefront/internal/config"
	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/router"
	"github.com/newerastudio/storefront/internal/store"
	"github.com/newerastudio/storefront/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	utils.SetSessionSecret(cfg.SessionSecret())

	// Initialize cart/account persistence
	kvStore, err := buildKVStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize kv store:", err)
	}

	// Initialize the catalog document
	doc, err := buildCatalogDocument(cfg)
	if err != nil {
		log.Fatal("Failed to initialize catalog store:", err)
	}

	products := store.NewProductStore(doc)
	pages := cache.NewPageCache()
	provider := buildCheckoutProvider(cfg)

	r := router.Initialize(cfg, products, pages, kvStore, provider)

	// Create HTTP server
	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logrus.Info("Server exited")
}

func buildKVStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.KV.Backend {
	case "file":
		return kv.NewFileStore(cfg.KV.Dir)
	case "redis":
		addr := net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port)
		return kv.NewRedisStore(addr, cfg.Redis.Password, cfg.Redis.DB, "storefront")
	case "sqlite":
		return kv.NewSQLiteStore(cfg.KV.SQLitePath)
	default:
		return kv.NewMemoryStore(), nil
	}
}

func buildCatalogDocument(cfg *config.Config) (store.Document, error) {
	switch cfg.Catalog.Backend {
	case "file":
		return store.NewFileDocument(cfg.Catalog.FilePath)
	case "s3":
		return store.NewS3Document(cfg.AWS.Region, cfg.Catalog.S3Bucket, cfg.Catalog.S3Key)
	default:
		// Seed backend: writes are kept in memory only.
		return nil, nil
	}
}

func buildCheckoutProvider(cfg *config.Config) checkout.Provider {
	switch cfg.Checkout.Provider {
	case "shopify":
		if cfg.Checkout.ShopifyDomain != "" && cfg.Checkout.ShopifyToken != "" {
			return checkout.ShopifyProvider{
				Domain: cfg.Checkout.ShopifyDomain,
				Token:  cfg.Checkout.ShopifyToken,
				Client: &http.Client{Timeout: 15 * time.Second},
			}
		}
		logrus.Warn("Shopify checkout selected but not configured, falling back to mock")
	case "stripe":
		if cfg.Checkout.StripeSecretKey != "" {
			successURL := cfg.Checkout.SuccessURL
			if successURL == "" || successURL[0] == '/' {
				successURL = fmt.Sprintf("http://%s:%s%s", cfg.Server.Host, cfg.Server.Port, cfg.Checkout.SuccessURL)
			}
			return checkout.NewStripeProvider(cfg.Checkout.StripeSecretKey, successURL, cfg.Checkout.CancelURL)
		}
		logrus.Warn("Stripe checkout selected but not configured, falling back to mock")
	}
	return checkout.MockProvider{SuccessPath: cfg.Checkout.SuccessURL}
}
