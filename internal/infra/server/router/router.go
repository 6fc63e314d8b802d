// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/controle-financeiro/backend/internal/integration/entrypoint/controller"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	accountController     *controller.AccountController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	cardController        *controller.CardController
	assetController       *controller.AssetController
	tradeController       *controller.TradeController
	priceController       *controller.PriceController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	cardController *controller.CardController,
	assetController *controller.AssetController,
	tradeController *controller.TradeController,
	priceController *controller.PriceController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		accountController:     accountController,
		categoryController:    categoryController,
		transactionController: transactionController,
		cardController:        cardController,
		assetController:       assetController,
		tradeController:       tradeController,
		priceController:       priceController,
		dashboardController:   dashboardController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
			if r.authMiddleware != nil {
				auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			}
		}

		// Account routes (require authentication)
		if r.accountController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
				accounts.PATCH("/:id", r.accountController.Update)
				accounts.DELETE("/:id", r.accountController.Delete)
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		// Transaction and ledger routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.POST("/:id/settle", r.transactionController.Settle)
				transactions.POST("/import", r.transactionController.Import)
			}
		}

		// Card, charge and invoice routes (require authentication)
		if r.cardController != nil && r.authMiddleware != nil {
			cards := v1.Group("/cards")
			cards.Use(r.authMiddleware.Authenticate())
			{
				cards.GET("", r.cardController.List)
				cards.POST("", r.cardController.Create)
				cards.PUT("/:id", r.cardController.Update)
				cards.DELETE("/:id", r.cardController.Delete)

				cards.GET("/charges", r.cardController.ListCharges)
				cards.POST("/charges", r.cardController.RegisterCharge)
				cards.DELETE("/charges/:id", r.cardController.DeleteCharge)

				cards.GET("/invoices", r.cardController.ListInvoices)
				cards.POST("/invoices/:id/pay", r.cardController.PayInvoice)
			}
		}

		// Asset routes (require authentication)
		if r.assetController != nil && r.authMiddleware != nil {
			assets := v1.Group("/assets")
			assets.Use(r.authMiddleware.Authenticate())
			{
				assets.GET("", r.assetController.List)
				assets.POST("", r.assetController.Create)
				assets.PUT("/:id", r.assetController.Update)
				assets.DELETE("/:id", r.assetController.Delete)
			}
		}

		// Trade and income routes (require authentication)
		if r.tradeController != nil && r.authMiddleware != nil {
			trades := v1.Group("/trades")
			trades.Use(r.authMiddleware.Authenticate())
			{
				trades.GET("", r.tradeController.ListTrades)
				trades.POST("", r.tradeController.CreateTrade)
				trades.DELETE("/:id", r.tradeController.DeleteTrade)
			}

			incomes := v1.Group("/incomes")
			incomes.Use(r.authMiddleware.Authenticate())
			{
				incomes.GET("", r.tradeController.ListIncomes)
				incomes.POST("", r.tradeController.CreateIncome)
				incomes.DELETE("/:id", r.tradeController.DeleteIncome)
			}
		}

		// Price and quote routes (require authentication)
		if r.priceController != nil && r.authMiddleware != nil {
			prices := v1.Group("/prices")
			prices.Use(r.authMiddleware.Authenticate())
			{
				prices.GET("", r.priceController.List)
				prices.POST("", r.priceController.Upsert)
				prices.POST("/refresh", r.priceController.Refresh)
			}
		}

		// Dashboard and portfolio routes (require authentication)
		if r.dashboardController != nil && r.authMiddleware != nil {
			reports := v1.Group("")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/dashboard", r.dashboardController.GetDashboard)
				reports.GET("/portfolio", r.dashboardController.GetPortfolio)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
