package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	System     *handler.SystemHandler
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Stock      *handler.StockHandler
	Order      *handler.OrderHandler
	Review     *handler.ReviewHandler
	Backoffice *handler.BackofficeHandler
}

// Config holds router dependencies
type Config struct {
	AppConfig      *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Handlers       Handlers
}

// New builds the gin engine with middleware and all route groups
func New(cfg Config) *gin.Engine {
	if cfg.AppConfig.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.AppConfig.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.AppConfig.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.AppConfig.HTTP))
	if cfg.AppConfig.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			cfg.AppConfig.HTTP.RateLimitRequests,
			cfg.AppConfig.HTTP.RateLimitWindow,
		)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", cfg.Handlers.System.Health)

	api := engine.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", cfg.Handlers.Auth.Register)
	api.POST("/auth/login", cfg.Handlers.Auth.Login)
	api.POST("/auth/refresh", cfg.Handlers.Auth.Refresh)
	api.GET("/products", cfg.Handlers.Product.List)
	api.GET("/products/:id", cfg.Handlers.Product.Get)
	api.GET("/products/:id/reviews", cfg.Handlers.Review.ListByProduct)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		Logger:         cfg.Logger,
	}))

	// Account
	authed.POST("/auth/logout", cfg.Handlers.Auth.Logout)
	authed.GET("/auth/me", cfg.Handlers.Auth.Profile)
	authed.PUT("/auth/me", cfg.Handlers.Auth.UpdateProfile)
	authed.PUT("/auth/password", cfg.Handlers.Auth.ChangePassword)

	// Orders, customer side
	authed.POST("/orders", cfg.Handlers.Order.Create)
	authed.GET("/orders", cfg.Handlers.Order.ListMine)
	authed.GET("/orders/:id", cfg.Handlers.Order.Get)
	authed.POST("/orders/:id/cancellation", cfg.Handlers.Order.RequestCancellation)

	// Reviews
	authed.POST("/products/:id/reviews", cfg.Handlers.Review.Create)
	authed.PUT("/reviews/:id", cfg.Handlers.Review.Update)
	authed.DELETE("/reviews/:id", cfg.Handlers.Review.Delete)

	// Catalog management, admin only
	requireAdmin := middleware.RequireRoles("admin")
	authed.POST("/products", requireAdmin, cfg.Handlers.Product.Create)
	authed.PUT("/products/:id", requireAdmin, cfg.Handlers.Product.Update)
	authed.DELETE("/products/:id", requireAdmin, cfg.Handlers.Product.Delete)

	// Stock ledger, shared between admins and stock admins
	stock := authed.Group("/stock")
	stock.Use(middleware.RequireRoles("admin", "stockadmin"))
	stock.POST("/:id/actions", cfg.Handlers.Stock.Adjust)
	stock.GET("/summary", cfg.Handlers.Stock.Summary)

	// Order administration
	admin := authed.Group("/admin")
	admin.Use(requireAdmin)
	admin.GET("/orders", cfg.Handlers.Order.ListAll)
	admin.PUT("/orders/:id/status", cfg.Handlers.Order.UpdateStatus)
	admin.PUT("/orders/:id/payment", cfg.Handlers.Order.UpdatePaymentStatus)
	admin.PUT("/orders/:id/cancellation", cfg.Handlers.Order.RespondToCancellation)

	// Back office
	backoffice := authed.Group("/backoffice")
	backoffice.Use(requireAdmin)
	backoffice.GET("/offline-sales", cfg.Handlers.Backoffice.ListOfflineSales)
	backoffice.GET("/offline-sales/revenue", cfg.Handlers.Backoffice.OfflineRevenue)
	backoffice.POST("/employees", cfg.Handlers.Backoffice.CreateEmployee)
	backoffice.GET("/employees", cfg.Handlers.Backoffice.ListEmployees)
	backoffice.PUT("/employees/:id", cfg.Handlers.Backoffice.UpdateEmployee)
	backoffice.POST("/employees/:id/deactivate", cfg.Handlers.Backoffice.DeactivateEmployee)
	backoffice.DELETE("/employees/:id", cfg.Handlers.Backoffice.DeleteEmployee)
	backoffice.POST("/expenses", cfg.Handlers.Backoffice.CreateExpense)
	backoffice.GET("/expenses", cfg.Handlers.Backoffice.ListExpenses)
	backoffice.GET("/expenses/total", cfg.Handlers.Backoffice.TotalExpenses)
	backoffice.PUT("/expenses/:id", cfg.Handlers.Backoffice.UpdateExpense)
	backoffice.DELETE("/expenses/:id", cfg.Handlers.Backoffice.DeleteExpense)

	return engine
}
