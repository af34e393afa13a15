package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	"github.com/dishankgupta/milk-subs-sub005/internal/infrastructure/scheduler"
	"github.com/dishankgupta/milk-subs-sub005/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting milk subscription backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	routeRepo := persistence.NewGormRouteRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	modificationRepo := persistence.NewGormModificationRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Auth infrastructure. Redis backs token revocation; without it
	// logout falls back to letting tokens expire naturally.
	jwtService := auth.NewJWTService(cfg.JWT)
	totpService := auth.NewTOTPService(cfg.Auth.TOTPIssuer)
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			_ = redisBlacklist.Close()
		}()
	}

	// Idempotency store for replay-safe POSTs, same Redis fallback
	// story as the blacklist.
	var idempotencyStore cache.IdempotencyStore
	if redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotencyStore = redisStore
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, totpService, blacklist,
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
		}, log)
	userService := identityapp.NewUserService(userRepo, log)
	routeService := partnerapp.NewRouteService(routeRepo, customerRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, routeRepo)
	productService := catalogapp.NewProductService(productRepo)
	subscriptionService := subscriptionapp.NewService(subscriptionRepo, customerRepo, productRepo)
	saleService := tradeapp.NewSaleService(saleRepo, customerRepo, productRepo)
	modificationService := tradeapp.NewModificationService(modificationRepo, subscriptionRepo)
	orderService := deliveryapp.NewOrderService(orderRepo, subscriptionRepo, modificationRepo, customerRepo, productRepo, log)
	invoiceService := financeapp.NewInvoiceService(invoiceRepo, orderRepo, saleRepo, customerRepo, productRepo, log)
	paymentService := financeapp.NewPaymentService(paymentRepo, invoiceRepo, customerRepo, log)
	bulkService := bulkapp.NewService(saleRepo, modificationRepo, subscriptionRepo, customerRepo, productRepo, log)
	dashboardService := reportapp.NewDashboardService(dashboardRepo)

	engine := router.Setup(router.Config{
		HTTP:           cfg.HTTP,
		Version:        version,
		Logger:         log,
		Database:       db,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,

		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.HTTP.IdempotencyTTL,

		AuthService:         authService,
		UserService:         userService,
		RouteService:        routeService,
		CustomerService:     customerService,
		ProductService:      productService,
		SubscriptionService: subscriptionService,
		SaleService:         saleService,
		ModificationService: modificationService,
		OrderService:        orderService,
		InvoiceService:      invoiceService,
		PaymentService:      paymentService,
		BulkService:         bulkService,
		DashboardService:    dashboardService,
	})

	// Optional in-process scheduler for daily order generation.
	var (
		genScheduler *scheduler.Scheduler
		genTrigger   *scheduler.DailyTrigger
	)
	if cfg.Scheduler.Enabled {
		executor := scheduler.NewOrderGenerationExecutor(orderService, log)
		genScheduler = scheduler.NewScheduler(scheduler.DefaultConfig(), executor, log)
		genTrigger = scheduler.NewDailyTrigger(scheduler.TriggerConfig{
			GenerationHour:   cfg.Scheduler.GenerationHour,
			GenerationMinute: cfg.Scheduler.GenerationMinute,
			CheckInterval:    time.Minute,
		}, genScheduler, log)
		if err := genScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start order scheduler", zap.Error(err))
		}
		if err := genTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start daily trigger", zap.Error(err))
		}
		log.Info("Daily order generation enabled",
			zap.Int("hour", cfg.Scheduler.GenerationHour),
			zap.Int("minute", cfg.Scheduler.GenerationMinute),
		)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if genTrigger != nil {
		if err := genTrigger.Stop(ctx); err != nil {
			log.Error("Error stopping daily trigger", zap.Error(err))
		}
	}
	if genScheduler != nil {
		if err := genScheduler.Stop(ctx); err != nil {
			log.Error("Error stopping order scheduler", zap.Error(err))
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
