// Package main is the entry point for the RetailHub API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"retailhub/internal/domain/auth"
	"retailhub/internal/domain/catalogs/category"
	"retailhub/internal/domain/catalogs/product"
	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/domain/invoices"
	"retailhub/internal/domain/orders"
	"retailhub/internal/domain/reports"
	"retailhub/internal/domain/warehouse"
	"retailhub/internal/infrastructure/cache"
	v1 "retailhub/internal/infrastructure/http/v1"
	"retailhub/internal/infrastructure/storage/postgres"
	"retailhub/internal/infrastructure/storage/postgres/auth_repo"
	"retailhub/internal/infrastructure/storage/postgres/catalog_repo"
	"retailhub/internal/infrastructure/storage/postgres/invoice_repo"
	"retailhub/internal/infrastructure/storage/postgres/order_repo"
	"retailhub/internal/infrastructure/storage/postgres/report_repo"
	"retailhub/internal/infrastructure/storage/postgres/warehouse_repo"
	"retailhub/pkg/logger"
	"retailhub/pkg/numerator"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting retailhub server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	poolCfg := postgres.DefaultPoolConfig(dsn)
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool)

	// --- Repositories ---
	storeRepo := catalog_repo.NewStoreRepo(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	orderRepo := order_repo.NewOrderRepo(txManager)
	transactionRepo := warehouse_repo.NewTransactionRepo(txManager)
	invoiceRepo := invoice_repo.NewInvoiceRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- Services ---
	storeService := store.NewService(storeRepo, txManager, numeratorService)
	categoryService := category.NewService(categoryRepo, txManager, numeratorService)
	productService := product.NewService(productRepo, txManager, numeratorService)
	warehouseService := warehouse.NewService(transactionRepo, productRepo, txManager, numeratorService)
	orderService := orders.NewService(orderRepo, storeService, productService, warehouseService, txManager, numeratorService)
	invoiceService := invoices.NewService(invoiceRepo, orderService, txManager, numeratorService)

	// --- Report cache (optional) ---
	reportOpts := []reports.Option{
		reports.WithTransactionLimit(getEnvInt("REPORT_TX_LIMIT", 0)),
	}
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unreachable, report caching disabled", "error", err)
		} else {
			reportCache, err := cache.NewReportCache(redisClient)
			if err != nil {
				log.Fatalw("failed to create report cache", "error", err)
			}
			ttl := getEnvDuration("REPORT_CACHE_TTL", 10*time.Minute)
			reportOpts = append(reportOpts, reports.WithCache(reportCache, ttl))
			log.Infow("report cache enabled", "ttl", ttl)
		}
	}
	reportService := reports.NewService(reportRepo, reportOpts...)

	// --- Auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtTTL := getEnvDuration("JWT_TTL", 24*time.Hour)
	tokenIssuer := auth.NewTokenIssuer(jwtSecret, jwtTTL)
	authService := auth.NewService(userRepo, tokenIssuer, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:    pool,
		Logger:  log,
		Version: version,

		AuthService:      authService,
		StoreService:     storeService,
		CategoryService:  categoryService,
		ProductService:   productService,
		OrderService:     orderService,
		WarehouseService: warehouseService,
		InvoiceService:   invoiceService,
		ReportService:    reportService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
