// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/controle-financeiro/backend/config"
	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/application/usecase/account"
	"github.com/controle-financeiro/backend/internal/application/usecase/asset"
	"github.com/controle-financeiro/backend/internal/application/usecase/auth"
	"github.com/controle-financeiro/backend/internal/application/usecase/card"
	"github.com/controle-financeiro/backend/internal/application/usecase/category"
	"github.com/controle-financeiro/backend/internal/application/usecase/income"
	"github.com/controle-financeiro/backend/internal/application/usecase/invoice"
	"github.com/controle-financeiro/backend/internal/application/usecase/ledger"
	"github.com/controle-financeiro/backend/internal/application/usecase/portfolio"
	"github.com/controle-financeiro/backend/internal/application/usecase/price"
	"github.com/controle-financeiro/backend/internal/application/usecase/quote"
	"github.com/controle-financeiro/backend/internal/application/usecase/trade"
	"github.com/controle-financeiro/backend/internal/application/usecase/transaction"
	"github.com/controle-financeiro/backend/internal/infra/server/router"
	"github.com/controle-financeiro/backend/internal/integration/adapters"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/controller"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
	"github.com/controle-financeiro/backend/internal/integration/persistence"
	"github.com/controle-financeiro/backend/internal/integration/quotes"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	BootstrapAdmin *auth.BootstrapAdminUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	cardRepo := persistence.NewCardRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	assetRepo := persistence.NewAssetRepository(db)
	tradeRepo := persistence.NewTradeRepository(db)
	incomeRepo := persistence.NewIncomeRepository(db)
	priceRepo := persistence.NewPriceRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Create the quote provider chain, fronted by Redis when available
	var quoteCache adapter.QuoteCache
	if cfg.Redis.Enabled {
		if opts, err := redis.ParseURL(cfg.Redis.URL); err == nil {
			if cfg.Redis.Password != "" {
				opts.Password = cfg.Redis.Password
			}
			opts.DB = cfg.Redis.DB
			quoteCache = quotes.NewRedisQuoteCache(redis.NewClient(opts), cfg.Quotes.CacheTTL)
		} else {
			slog.Warn("Invalid Redis URL, quote cache disabled", "error", err)
		}
	}
	brapiClient := quotes.NewBrapiClient(nil, cfg.Quotes.BrapiBaseURL, cfg.Quotes.BrapiToken)
	yahooClient := quotes.NewYahooClient(nil, cfg.Quotes.YahooBaseURL)
	quoteProvider := quotes.NewResolver(brapiClient, yahooClient, quoteCache)

	// Create auth use cases
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	getMeUseCase := auth.NewGetMeUseCase(userRepo)
	bootstrapAdminUseCase := auth.NewBootstrapAdminUseCase(userRepo, passwordService, slog.Default())

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create card and invoice use cases
	listCardsUseCase := card.NewListCardsUseCase(cardRepo)
	createCardUseCase := card.NewCreateCardUseCase(cardRepo, accountRepo)
	updateCardUseCase := card.NewUpdateCardUseCase(cardRepo, accountRepo)
	deleteCardUseCase := card.NewDeleteCardUseCase(cardRepo)
	registerChargeUseCase := invoice.NewRegisterChargeUseCase(cardRepo, invoiceRepo, categoryRepo)
	listChargesUseCase := invoice.NewListChargesUseCase(invoiceRepo)
	deleteChargeUseCase := invoice.NewDeleteChargeUseCase(invoiceRepo)
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo)
	payInvoiceUseCase := invoice.NewPayInvoiceUseCase(cardRepo, invoiceRepo, accountRepo, categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, invoiceRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, cardRepo, registerChargeUseCase)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	settleCommitmentUseCase := transaction.NewSettleCommitmentUseCase(transactionRepo, accountRepo)
	bulkImportUseCase := transaction.NewBulkImportUseCase(transactionRepo, accountRepo, categoryRepo)

	// Create investment use cases
	listAssetsUseCase := asset.NewListAssetsUseCase(assetRepo)
	createAssetUseCase := asset.NewCreateAssetUseCase(assetRepo, accountRepo)
	updateAssetUseCase := asset.NewUpdateAssetUseCase(assetRepo, accountRepo)
	deleteAssetUseCase := asset.NewDeleteAssetUseCase(assetRepo)
	createTradeUseCase := trade.NewCreateTradeUseCase(tradeRepo, assetRepo, categoryRepo, transactionRepo)
	deleteTradeUseCase := trade.NewDeleteTradeUseCase(tradeRepo, assetRepo, categoryRepo, slog.Default())
	listTradesUseCase := trade.NewListTradesUseCase(tradeRepo)
	createIncomeUseCase := income.NewCreateIncomeUseCase(incomeRepo, assetRepo, categoryRepo)
	deleteIncomeUseCase := income.NewDeleteIncomeUseCase(incomeRepo)
	listIncomesUseCase := income.NewListIncomesUseCase(incomeRepo)
	upsertPriceUseCase := price.NewUpsertPriceUseCase(priceRepo, assetRepo)
	listPricesUseCase := price.NewListPricesUseCase(priceRepo)
	refreshQuotesUseCase := quote.NewRefreshQuotesUseCase(assetRepo, priceRepo, quoteProvider, cfg.Quotes.MaxWorkers, cfg.Quotes.Timeout)

	// Create report use cases
	getDashboardUseCase := ledger.NewGetDashboardUseCase(transactionRepo, invoiceRepo)
	getPortfolioUseCase := portfolio.NewGetPortfolioUseCase(tradeRepo, assetRepo, priceRepo, incomeRepo, accountRepo, transactionRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(loginUseCase, getMeUseCase)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		createAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		deleteTransactionUseCase,
		settleCommitmentUseCase,
		bulkImportUseCase,
	)

	cardController := controller.NewCardController(
		listCardsUseCase,
		createCardUseCase,
		updateCardUseCase,
		deleteCardUseCase,
		registerChargeUseCase,
		listChargesUseCase,
		deleteChargeUseCase,
		listInvoicesUseCase,
		payInvoiceUseCase,
	)

	assetController := controller.NewAssetController(
		listAssetsUseCase,
		createAssetUseCase,
		updateAssetUseCase,
		deleteAssetUseCase,
	)

	tradeController := controller.NewTradeController(
		createTradeUseCase,
		deleteTradeUseCase,
		listTradesUseCase,
		createIncomeUseCase,
		deleteIncomeUseCase,
		listIncomesUseCase,
	)

	priceController := controller.NewPriceController(
		upsertPriceUseCase,
		listPricesUseCase,
		refreshQuotesUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getDashboardUseCase,
		getPortfolioUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		categoryController,
		transactionController,
		cardController,
		assetController,
		tradeController,
		priceController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		BootstrapAdmin: bootstrapAdminUseCase,
	}
}
