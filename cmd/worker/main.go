// Package main is the entry point for the RetailHub background worker.
// Runs scheduled jobs: nightly report cache warming, low-stock alerting
// and pool health logging.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"retailhub/internal/domain/catalogs/product"
	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/domain/orders"
	"retailhub/internal/domain/reports"
	"retailhub/internal/infrastructure/cache"
	"retailhub/internal/infrastructure/storage/postgres"
	"retailhub/internal/infrastructure/storage/postgres/catalog_repo"
	"retailhub/internal/infrastructure/storage/postgres/report_repo"
	"retailhub/pkg/logger"
	"retailhub/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting retailhub worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(pool)

	storeRepo := catalog_repo.NewStoreRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	storeService := store.NewService(storeRepo, txManager, numeratorService)
	productService := product.NewService(productRepo, txManager, numeratorService)

	reportOpts := []reports.Option{
		reports.WithTransactionLimit(getEnvInt("REPORT_TX_LIMIT", 0)),
	}
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unreachable, cache warming will recompute only", "error", err)
		} else {
			reportCache, err := cache.NewReportCache(redisClient)
			if err != nil {
				log.Fatalw("failed to create report cache", "error", err)
			}
			// Warmed entries live long enough for the morning dashboard rush.
			reportOpts = append(reportOpts, reports.WithCache(reportCache, 25*time.Hour))
		}
	}
	reportService := reports.NewService(reportRepo, reportOpts...)

	w := &worker{
		stores:   storeService,
		products: productService,
		reports:  reportService,
		pool:     pool,
		log:      log.WithComponent("worker"),
	}

	scheduler := cron.New()

	// Nightly warm of yesterday's per-store summaries, both strategies.
	if _, err := scheduler.AddFunc(getEnv("WARM_SCHEDULE", "15 2 * * *"), func() {
		w.warmSummaries(ctx)
	}); err != nil {
		log.Fatalw("invalid warm schedule", "error", err)
	}

	// Hourly low-stock check.
	if _, err := scheduler.AddFunc("@hourly", func() {
		w.checkLowStock(ctx)
	}); err != nil {
		log.Fatalw("invalid low-stock schedule", "error", err)
	}

	// Periodic pool stats for capacity monitoring.
	if _, err := scheduler.AddFunc("@every 5m", func() {
		pool.LogPoolStats(ctx)
	}); err != nil {
		log.Fatalw("invalid pool stats schedule", "error", err)
	}

	scheduler.Start()
	log.Info("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	log.Info("worker stopped")
}

type worker struct {
	stores   *store.Service
	products *product.Service
	reports  *reports.Service
	pool     *postgres.Pool
	log      *logger.Logger
}

// warmSummaries precomputes yesterday's profit summary for every active
// store under both classification strategies, so the first dashboard hit of
// the morning is served from cache.
func (w *worker) warmSummaries(ctx context.Context) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	stores, err := w.stores.FindActive(ctx)
	if err != nil {
		w.log.Errorw("cache warming: failed to list stores", "error", err)
		return
	}

	warmed := 0
	for _, st := range stores {
		for _, strategy := range []orders.Strategy{orders.StrategyStrict, orders.StrategyHeuristic} {
			storeID := st.ID
			filter := reports.Filter{
				Range:   reports.DateRange{From: yesterday, To: yesterday},
				StoreID: &storeID,
			}
			if _, err := w.reports.ProfitSummary(ctx, filter, strategy); err != nil {
				w.log.Errorw("cache warming failed",
					"store_id", st.ID,
					"strategy", strategy,
					"error", err,
				)
				continue
			}
			warmed++
		}
	}

	w.log.Infow("report cache warmed",
		"date", yesterday,
		"stores", len(stores),
		"summaries", warmed,
	)
}

func (w *worker) checkLowStock(ctx context.Context) {
	items, err := w.products.FindLowStock(ctx)
	if err != nil {
		w.log.Errorw("low-stock check failed", "error", err)
		return
	}

	for _, p := range items {
		w.log.Warnw("product below minimum stock",
			"product_id", p.ID,
			"sku", p.SKU,
			"stock", p.Stock.Float64(),
			"min_stock", p.MinStock.Float64(),
		)
	}
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
