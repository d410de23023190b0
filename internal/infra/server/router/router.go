// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spaarbot/backend/internal/integration/entrypoint/controller"
	"github.com/spaarbot/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	transactionController  *controller.TransactionController
	categoryController     *controller.CategoryController
	dashboardController    *controller.DashboardController
	subscriptionController *controller.SubscriptionController
	bankImportController   *controller.BankImportController
	chatController         *controller.ChatController
	authRateLimiter        *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	dashboardController *controller.DashboardController,
	subscriptionController *controller.SubscriptionController,
	bankImportController *controller.BankImportController,
	chatController *controller.ChatController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		transactionController:  transactionController,
		categoryController:     categoryController,
		dashboardController:    dashboardController,
		subscriptionController: subscriptionController,
		bankImportController:   bankImportController,
		chatController:         chatController,
		authRateLimiter:        authRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

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
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/telegram", r.authRateLimiter.Middleware(), r.authController.Authenticate)
		}

		transactions := v1.Group("/transactions")
		transactions.Use(r.authMiddleware.Authenticate())
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
			transactions.POST("/bulk-delete", r.transactionController.BulkDelete)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.PATCH("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		dashboard := v1.Group("/dashboard")
		dashboard.Use(r.authMiddleware.Authenticate())
		{
			dashboard.GET("/trends", r.dashboardController.Trends)
			dashboard.GET("/categories", r.dashboardController.CategoryBreakdown)
			dashboard.GET("/summary", r.dashboardController.Summary)
			dashboard.GET("/data-range", r.dashboardController.DataRange)
		}

		subscriptions := v1.Group("/subscriptions")
		subscriptions.Use(r.authMiddleware.Authenticate())
		{
			subscriptions.GET("", r.subscriptionController.List)
			subscriptions.POST("", r.subscriptionController.Create)
			subscriptions.PATCH("/:id", r.subscriptionController.Update)
			subscriptions.DELETE("/:id", r.subscriptionController.Delete)
			subscriptions.GET("/upcoming", r.subscriptionController.UpcomingRenewals)
			subscriptions.GET("/detect", r.subscriptionController.DetectRecurring)
		}

		imports := v1.Group("/import")
		imports.Use(r.authMiddleware.Authenticate())
		{
			imports.POST("", r.bankImportController.Import)
			imports.POST("/preview", r.bankImportController.Preview)
		}

		chat := v1.Group("/chat")
		chat.Use(r.authMiddleware.Authenticate())
		{
			chat.POST("", r.chatController.SendMessage)
			chat.GET("/history", r.chatController.History)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
