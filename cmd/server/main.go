package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbackoffice "github.com/storefront/backend/internal/application/backoffice"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	appidentity "github.com/storefront/backend/internal/application/identity"
	apporder "github.com/storefront/backend/internal/application/order"
	appreview "github.com/storefront/backend/internal/application/review"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the token blacklist and the product cache. The server
	// degrades to in-process fallbacks when it is unreachable.
	var tokenBlacklist auth.TokenBlacklist
	var productCache cache.Store
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory blacklist and cache", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		productCache = cache.NewInMemoryStore()
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		productCache = cache.NewRedisStore(redisClient, cfg.App.Name)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	offlineSaleRepo := persistence.NewGormOfflineSaleRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := appcatalog.NewProductService(productRepo).WithCache(productCache)
	stockService := appcatalog.NewStockService(productRepo, offlineSaleRepo, log)
	orderService := apporder.NewOrderService(orderRepo, stockService, log)
	reviewService := appreview.NewReviewService(reviewRepo)
	authService := appidentity.NewAuthService(userRepo, jwtService, tokenBlacklist, log)
	backofficeService := appbackoffice.NewBackofficeService(offlineSaleRepo, employeeRepo, expenseRepo)

	middleware.SetupValidator()

	engine := router.New(router.Config{
		AppConfig:      cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Handlers: router.Handlers{
			System:     handler.NewSystemHandler(db, version),
			Auth:       handler.NewAuthHandler(authService),
			Product:    handler.NewProductHandler(productService),
			Stock:      handler.NewStockHandler(stockService),
			Order:      handler.NewOrderHandler(orderService),
			Review:     handler.NewReviewHandler(reviewService, authService),
			Backoffice: handler.NewBackofficeHandler(backofficeService),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("mode", gin.Mode()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
