// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/spaarbot/backend/config"
	"github.com/spaarbot/backend/internal/application/usecase/auth"
	"github.com/spaarbot/backend/internal/application/usecase/bankimport"
	"github.com/spaarbot/backend/internal/application/usecase/category"
	"github.com/spaarbot/backend/internal/application/usecase/chat"
	"github.com/spaarbot/backend/internal/application/usecase/dashboard"
	"github.com/spaarbot/backend/internal/application/usecase/subscription"
	"github.com/spaarbot/backend/internal/application/usecase/transaction"
	"github.com/spaarbot/backend/internal/infra/server/router"
	"github.com/spaarbot/backend/internal/integration/adapters"
	"github.com/spaarbot/backend/internal/integration/cache"
	"github.com/spaarbot/backend/internal/integration/entrypoint/controller"
	"github.com/spaarbot/backend/internal/integration/entrypoint/middleware"
	"github.com/spaarbot/backend/internal/integration/persistence"
	"github.com/spaarbot/backend/internal/integration/reminder"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	ReminderWorker *reminder.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	subscriptionRepo := persistence.NewSubscriptionRepository(db)
	chatRepo := persistence.NewChatRepository(db)

	// Create the transaction cache. A bad Redis URL is not fatal: the cache
	// degrades to misses and the database stays the source of truth.
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.Warn("Invalid Redis URL, cache will operate against default address", "error", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)
	transactionCache := cache.NewTransactionCache(redisClient, cfg.Redis.CacheTTL)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	telegramVerifier := adapters.NewTelegramVerifier(cfg.Telegram.BotToken, cfg.Telegram.InitDataMaxAge)
	telegramNotifier := adapters.NewTelegramNotifier(cfg.Telegram.BotToken)
	chatService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey)

	// Create auth use case
	authenticateUseCase := auth.NewAuthenticateUseCase(telegramVerifier, userRepo, tokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionCache)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, transactionCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, transactionCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, transactionCache)
	bulkDeleteTransactionsUseCase := transaction.NewBulkDeleteTransactionsUseCase(transactionRepo, transactionCache)

	// Create dashboard use cases
	getTrendsUseCase := dashboard.NewGetTrendsUseCase(transactionRepo, categoryRepo, transactionCache)
	getCategoryBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(transactionRepo, categoryRepo, transactionCache)
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(transactionRepo, categoryRepo, transactionCache)
	getDataRangeUseCase := dashboard.NewGetDataRangeUseCase(transactionRepo)

	// Create subscription use cases
	listSubscriptionsUseCase := subscription.NewListSubscriptionsUseCase(subscriptionRepo)
	createSubscriptionUseCase := subscription.NewCreateSubscriptionUseCase(subscriptionRepo)
	updateSubscriptionUseCase := subscription.NewUpdateSubscriptionUseCase(subscriptionRepo)
	deleteSubscriptionUseCase := subscription.NewDeleteSubscriptionUseCase(subscriptionRepo)
	upcomingRenewalsUseCase := subscription.NewUpcomingRenewalsUseCase(subscriptionRepo)
	detectRecurringUseCase := subscription.NewDetectRecurringUseCase(transactionRepo, subscriptionRepo)

	// Create bank import use cases
	previewStatementUseCase := bankimport.NewPreviewStatementUseCase(transactionRepo)
	importStatementUseCase := bankimport.NewImportStatementUseCase(transactionRepo, transactionCache)

	// Create chat use cases
	sendMessageUseCase := chat.NewSendMessageUseCase(chatRepo, transactionRepo, categoryRepo, chatService)
	getHistoryUseCase := chat.NewGetHistoryUseCase(chatRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(authenticateUseCase)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		bulkDeleteTransactionsUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getTrendsUseCase,
		getCategoryBreakdownUseCase,
		getSummaryUseCase,
		getDataRangeUseCase,
	)

	subscriptionController := controller.NewSubscriptionController(
		listSubscriptionsUseCase,
		createSubscriptionUseCase,
		updateSubscriptionUseCase,
		deleteSubscriptionUseCase,
		upcomingRenewalsUseCase,
		detectRecurringUseCase,
	)

	bankImportController := controller.NewBankImportController(
		previewStatementUseCase,
		importStatementUseCase,
	)

	chatController := controller.NewChatController(
		sendMessageUseCase,
		getHistoryUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var authRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		authRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		authRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		categoryController,
		dashboardController,
		subscriptionController,
		bankImportController,
		chatController,
		authRateLimiter,
		authMiddleware,
	)

	// Create the renewal reminder worker
	reminderWorker := reminder.NewWorker(
		subscriptionRepo,
		userRepo,
		telegramNotifier,
		cfg.Reminder.Schedule,
		cfg.Reminder.WindowDays,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		ReminderWorker: reminderWorker,
	}
}
