package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ZTormDev/pos/internal/config"
	"github.com/ZTormDev/pos/internal/handler"
	"github.com/ZTormDev/pos/internal/middleware"
	"github.com/ZTormDev/pos/internal/service"
	"github.com/ZTormDev/pos/internal/storage"
	"github.com/ZTormDev/pos/internal/store"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Ledger ← Storage
func New(cfg *config.Config, ledger *store.Ledger, st storage.Store) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc, err := service.NewAuthService(cfg)
	if err != nil {
		return nil, err
	}
	inventorySvc := service.NewInventoryService(ledger)
	registerSvc := service.NewRegisterService(ledger)
	saleSvc := service.NewSaleService(ledger, decimal.NewFromFloat(cfg.TaxRate))
	reportSvc := service.NewReportService(ledger, cfg.LowStockThreshold, nil)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(inventorySvc)
	salesH := handler.NewSalesHandler(saleSvc)
	registerH := handler.NewRegisterHandler(registerSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(st))
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog reads are open to every authenticated actor
		v1.GET("/products", productsH.List)
		v1.GET("/products/:id", productsH.GetByID)
		v1.GET("/products/barcode/:code", productsH.GetByBarcode)
		// Catalog writes are admin only
		adminProducts := v1.Group("/products", middleware.RequireRole("admin"))
		{
			adminProducts.POST("", productsH.Create)
			adminProducts.PUT("/:id", productsH.Update)
			adminProducts.DELETE("/:id", productsH.Delete)
			adminProducts.PATCH("/:id/stock", productsH.AdjustStock)
		}

		// Sales and drawer operations are not role-gated: any authenticated
		// actor may operate the register.
		v1.POST("/sales", salesH.Create)
		v1.GET("/sales", salesH.List)
		v1.GET("/sales/:id", salesH.Get)
		v1.GET("/sales/:id/receipt", salesH.Receipt)

		v1.POST("/register/open", registerH.Open)
		v1.POST("/register/close", registerH.Close)
		v1.POST("/register/movements", registerH.RecordMovement)
		v1.GET("/register", registerH.Current)
		v1.GET("/register/movements", registerH.Movements)

		reports := v1.Group("/reports")
		{
			reports.GET("/summary", reportsH.Summary)
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/top-products", reportsH.TopProducts)
			reports.GET("/low-stock", reportsH.LowStock)
			reports.GET("/revenue", reportsH.Revenue)
		}
	}

	return r, nil
}
