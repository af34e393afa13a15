package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bulkapp "github.com/dishankgupta/milk-subs-sub005/internal/application/bulk"
	catalogapp "github.com/dishankgupta/milk-subs-sub005/internal/application/catalog"
	deliveryapp "github.com/dishankgupta/milk-subs-sub005/internal/application/delivery"
	financeapp "github.com/dishankgupta/milk-subs-sub005/internal/application/finance"
	identityapp "github.com/dishankgupta/milk-subs-sub005/internal/application/identity"
	partnerapp "github.com/dishankgupta/milk-subs-sub005/internal/application/partner"
	reportapp "github.com/dishankgupta/milk-subs-sub005/internal/application/report"
	subscriptionapp "github.com/dishankgupta/milk-subs-sub005/internal/application/subscription"
	tradeapp "github.com/dishankgupta/milk-subs-sub005/internal/application/trade"
	"github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/auth"
	"github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/cache"
	"github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/config"
	"github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/logger"
	"github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/persistence"
	"github.com/dishankgupta/milk-subs-sub005/internal/interfaces/http/handler"
	"github.com/dishankgupta/milk-subs-sub005/internal/interfaces/http/middleware"
)

// Config carries everything the router needs to wire the API
type Config struct {
	HTTP    config.HTTPConfig
	Version string

	Logger         *zap.Logger
	Database       *persistence.Database
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	// IdempotencyStore, when set, lets clients replay-protect payment
	// and bulk submissions with an Idempotency-Key header
	IdempotencyStore cache.IdempotencyStore
	IdempotencyTTL   time.Duration

	AuthService         *identityapp.AuthService
	UserService         *identityapp.UserService
	RouteService        *partnerapp.RouteService
	CustomerService     *partnerapp.CustomerService
	ProductService      *catalogapp.ProductService
	SubscriptionService *subscriptionapp.Service
	SaleService         *tradeapp.SaleService
	ModificationService *tradeapp.ModificationService
	OrderService        *deliveryapp.OrderService
	InvoiceService      *financeapp.InvoiceService
	PaymentService      *financeapp.PaymentService
	BulkService         *bulkapp.Service
	DashboardService    *reportapp.DashboardService
}

// Setup builds the gin engine with all middleware and routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(cfg.Logger))
	r.Use(logger.Recovery(cfg.Logger))
	r.Use(middleware.Secure())
	r.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		r.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		r.Use(middleware.RateLimit(middleware.NewRateLimiter(
			cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	systemHandler := handler.NewSystemHandler(cfg.Database, cfg.Version)
	r.GET("/health", systemHandler.Health)
	r.GET("/ready", systemHandler.Ready)

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.UserService)
	routeHandler := handler.NewRouteHandler(cfg.RouteService)
	customerHandler := handler.NewCustomerHandler(cfg.CustomerService)
	productHandler := handler.NewProductHandler(cfg.ProductService)
	subscriptionHandler := handler.NewSubscriptionHandler(cfg.SubscriptionService)
	saleHandler := handler.NewSaleHandler(cfg.SaleService)
	modificationHandler := handler.NewModificationHandler(cfg.ModificationService)
	orderHandler := handler.NewOrderHandler(cfg.OrderService)
	invoiceHandler := handler.NewInvoiceHandler(cfg.InvoiceService)
	paymentHandler := handler.NewPaymentHandler(cfg.PaymentService)
	bulkHandler := handler.NewBulkHandler(cfg.BulkService)
	reportHandler := handler.NewReportHandler(cfg.DashboardService)

	api := r.Group("/api/v1")
	api.Use(middleware.JWT(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: cfg.Logger,
	}))

	authGroup := api.Group("/auth")
	{
		// Login endpoints get their own tighter rate limit
		if cfg.HTTP.AuthRateLimitEnabled {
			authLimiter := middleware.NewRateLimiter(
				cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
			authGroup.POST("/login", middleware.RateLimit(authLimiter), authHandler.Login)
		} else {
			authGroup.POST("/login", authHandler.Login)
		}
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.Me)
		authGroup.POST("/change-password", authHandler.ChangePassword)
		authGroup.POST("/totp/begin", authHandler.BeginTOTP)
		authGroup.POST("/totp/confirm", authHandler.ConfirmTOTP)
		authGroup.POST("/totp/disable", authHandler.DisableTOTP)
	}

	users := api.Group("/users", middleware.RequireAdmin())
	{
		users.POST("", userHandler.Create)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
		users.POST("/:id/reset-password", userHandler.ResetPassword)
		users.POST("/:id/activate", userHandler.Activate)
		users.POST("/:id/deactivate", userHandler.Deactivate)
		users.POST("/:id/unlock", userHandler.Unlock)
	}

	routes := api.Group("/routes")
	{
		routes.POST("", routeHandler.Create)
		routes.GET("", routeHandler.List)
		routes.GET("/:id", routeHandler.Get)
		routes.PUT("/:id", routeHandler.Update)
		routes.DELETE("/:id", routeHandler.Delete)
		routes.POST("/:id/activate", routeHandler.Activate)
		routes.POST("/:id/deactivate", routeHandler.Deactivate)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", customerHandler.Create)
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)
		customers.POST("/:id/activate", customerHandler.Activate)
		customers.POST("/:id/deactivate", customerHandler.Deactivate)
		customers.GET("/:id/balance", paymentHandler.CustomerBalance)
	}

	products := api.Group("/products")
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/by-code/:code", productHandler.GetByCode)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.POST("/:id/activate", productHandler.Activate)
		products.POST("/:id/deactivate", productHandler.Deactivate)
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("", subscriptionHandler.Create)
		subscriptions.GET("", subscriptionHandler.List)
		subscriptions.GET("/:id", subscriptionHandler.Get)
		subscriptions.PUT("/:id", subscriptionHandler.Update)
		subscriptions.DELETE("/:id", subscriptionHandler.Delete)
		subscriptions.POST("/:id/activate", subscriptionHandler.Activate)
		subscriptions.POST("/:id/deactivate", subscriptionHandler.Deactivate)
		subscriptions.GET("/:id/pattern-preview", subscriptionHandler.PreviewPattern)
		subscriptions.GET("/:id/quantity", subscriptionHandler.QuantityOn)
	}

	sales := api.Group("/sales")
	{
		sales.POST("", saleHandler.Create)
		sales.GET("", saleHandler.List)
		sales.GET("/:id", saleHandler.Get)
		sales.POST("/:id/cancel", saleHandler.Cancel)
	}

	modifications := api.Group("/modifications")
	{
		modifications.POST("", modificationHandler.Create)
		modifications.GET("", modificationHandler.List)
		modifications.GET("/:id", modificationHandler.Get)
		modifications.POST("/:id/cancel", modificationHandler.Cancel)
	}

	orders := api.Group("/orders")
	{
		orders.POST("/generate", orderHandler.Generate)
		orders.POST("/bulk-deliver", orderHandler.BulkConfirm)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.POST("/:id/deliver", orderHandler.ConfirmDelivery)
		orders.POST("/:id/cancel", orderHandler.Cancel)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("/generate", invoiceHandler.Generate)
		invoices.POST("/bulk-generate", invoiceHandler.BulkGenerate)
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/by-number/:number", invoiceHandler.GetByNumber)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.POST("/:id/cancel", invoiceHandler.Cancel)
	}

	var idempotency gin.HandlerFunc
	if cfg.IdempotencyStore != nil {
		ttl := cfg.IdempotencyTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		idempotency = middleware.Idempotency(cfg.IdempotencyStore, ttl, cfg.Logger)
	}

	payments := api.Group("/payments")
	if idempotency != nil {
		payments.Use(idempotency)
	}
	{
		payments.POST("", paymentHandler.Record)
		payments.GET("", paymentHandler.List)
		payments.GET("/:id", paymentHandler.Get)
		payments.POST("/:id/allocate", paymentHandler.Allocate)
		payments.POST("/:id/void", paymentHandler.Void)
	}

	bulk := api.Group("/bulk")
	if idempotency != nil {
		bulk.Use(idempotency)
	}
	{
		bulk.POST("/sales", bulkHandler.SubmitSales)
		bulk.POST("/sales/summary", bulkHandler.SummarizeSales)
		bulk.POST("/sales/import", bulkHandler.ImportSales)
		bulk.POST("/modifications", bulkHandler.SubmitModifications)
		bulk.POST("/modifications/summary", bulkHandler.SummarizeModifications)
		bulk.POST("/modifications/import", bulkHandler.ImportModifications)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/dashboard", reportHandler.Dashboard)
		reports.GET("/route-delivery", reportHandler.RouteDelivery)
		reports.GET("/production", reportHandler.Production)
		reports.GET("/outstanding", reportHandler.Outstanding)
		reports.GET("/revenue-trend", reportHandler.RevenueTrend)
	}

	return r
}

func corsConfig(httpCfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(httpCfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = httpCfg.CORSAllowOrigins
	}
	if len(httpCfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = httpCfg.CORSAllowMethods
	}
	if len(httpCfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = httpCfg.CORSAllowHeaders
	}
	return cors
}
