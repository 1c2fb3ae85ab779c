// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"retailhub/internal/domain/auth"
	"retailhub/internal/domain/catalogs/category"
	"retailhub/internal/domain/catalogs/product"
	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/domain/invoices"
	"retailhub/internal/domain/orders"
	"retailhub/internal/domain/reports"
	"retailhub/internal/domain/warehouse"
	"retailhub/internal/infrastructure/http/v1/handlers"
	"retailhub/internal/infrastructure/http/v1/middleware"
	"retailhub/internal/infrastructure/storage/postgres"
	"retailhub/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	Pool    *postgres.Pool
	Logger  *logger.Logger
	Version string

	AuthService      *auth.Service
	StoreService     *store.Service
	CategoryService  *category.Service
	ProductService   *product.Service
	OrderService     *orders.Service
	WarehouseService *warehouse.Service
	InvoiceService   *invoices.Service
	ReportService    *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api/v1")

	// Public auth endpoints
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	api.POST("/auth/login", authHandler.Login)

	// Everything else requires a valid token
	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.AuthService))

	registerAuthRoutes(protected, base, authHandler)
	registerCatalogRoutes(protected, base, cfg)
	registerOrderRoutes(protected, base, cfg)
	registerWarehouseRoutes(protected, base, cfg)
	registerInvoiceRoutes(protected, base, cfg)
	registerReportRoutes(protected, base, cfg)

	return router
}

func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, h *handlers.AuthHandler) {
	authGroup := rg.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
		authGroup.POST("/change-password", h.ChangePassword)
		authGroup.POST("/register", middleware.RequireRole(auth.RoleAdmin), h.Register)
	}
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")

	// --- STORES ---
	{
		h := handlers.NewStoreHandler(base, cfg.StoreService)
		g := catalogs.Group("/stores")
		g.GET("", h.List)
		g.GET("/active", h.Active)
		g.GET("/:id", h.Get)
		g.POST("", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Create)
		g.PUT("/:id", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Update)
		g.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.Delete)
		g.POST("/:id/deletion-mark", middleware.RequireRole(auth.RoleAdmin), h.SetDeletionMark)
		g.POST("/:id/status", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.SetStatus)
	}

	// --- CATEGORIES ---
	{
		h := handlers.NewCategoryHandler(base, cfg.CategoryService)
		g := catalogs.Group("/categories")
		g.GET("", h.List)
		g.GET("/tree", h.GetTree)
		g.GET("/:id", h.Get)
		g.POST("", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Create)
		g.PUT("/:id", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Update)
		g.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.Delete)
		g.POST("/:id/deletion-mark", middleware.RequireRole(auth.RoleAdmin), h.SetDeletionMark)
	}

	// --- PRODUCTS ---
	{
		h := handlers.NewProductHandler(base, cfg.ProductService)
		g := catalogs.Group("/products")
		g.GET("", h.List)
		g.GET("/low-stock", h.LowStock)
		g.GET("/by-sku/:sku", h.GetBySKU)
		g.GET("/:id", h.Get)
		g.POST("", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Create)
		g.PUT("/:id", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Update)
		g.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.Delete)
		g.POST("/:id/deletion-mark", middleware.RequireRole(auth.RoleAdmin), h.SetDeletionMark)
	}
}

func registerOrderRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewOrderHandler(base, cfg.OrderService)
	g := rg.Group("/orders")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/channel-diagnosis", h.DiagnoseChannel)
	g.POST("", h.Create)
	g.POST("/:id/payments", h.RecordPayment)
	g.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Delete)
	g.POST("/bulk-delete", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.BulkDelete)
	g.POST("/ingest", middleware.RequireRole(auth.RoleAdmin), h.Ingest)
}

func registerWarehouseRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewWarehouseHandler(base, cfg.WarehouseService, cfg.StoreService)
	g := rg.Group("/warehouse")
	g.POST("/in", h.StockIn)
	g.POST("/out", h.StockOut)
	g.POST("/adjust", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Adjust)
	g.GET("/transactions", h.List)
	g.GET("/transactions/:id", h.Get)
	g.GET("/products/:productId/history", h.History)
}

func registerInvoiceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewInvoiceHandler(base, cfg.InvoiceService)
	g := rg.Group("/invoices")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.POST("/:id/payments", h.RecordPayment)
	g.POST("/:id/void", middleware.RequireRole(auth.RoleAdmin, auth.RoleManager), h.Void)
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewReportsHandler(base, cfg.ReportService)
	g := rg.Group("/reports")
	g.GET("/profit-summary", h.ProfitSummary)
	g.GET("/profit-summary/export", h.ExportProfitSummary)
	g.GET("/stock-usage", h.Usage)
	g.GET("/stock-usage/export", h.ExportUsage)
}
