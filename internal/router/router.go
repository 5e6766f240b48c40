// Package router assembles the HTTP API: services, handlers, middleware and routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"budgeteer/internal/config"
	_ "budgeteer/internal/docs" // registers the swagger document
	"budgeteer/internal/handlers"
	"budgeteer/internal/middleware"
	"budgeteer/internal/services"
	"budgeteer/internal/severity"
)

// New wires every service onto db and returns the configured Gin engine.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	classifier := severity.NewClassifier(cfg.SeverityBands)

	// Services
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	estimateService := services.NewEstimateService(db)
	transactionService := services.NewTransactionService(db)
	aggregationService := services.NewAggregationService(db, transactionService)
	summaryService := services.NewSummaryService(budgetService, transactionService, aggregationService, classifier)
	dashboardService := services.NewDashboardService(budgetService, transactionService, aggregationService, classifier, cfg.LatestLimit)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService, cfg.PageSize)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService, cfg.PageSize)
	estimateHandler := handlers.NewEstimateHandler(estimateService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService, cfg.PageSize)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:slug", categoryHandler.GetCategory)
	categories.PUT("/:slug", categoryHandler.UpdateCategory)
	categories.DELETE("/:slug", categoryHandler.DeleteCategory)

	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/:slug", budgetHandler.GetBudget)
	budgets.PUT("/:slug", budgetHandler.UpdateBudget)
	budgets.DELETE("/:slug", budgetHandler.DeleteBudget)

	estimates := budgets.Group("/:slug/estimates")
	estimates.POST("", estimateHandler.CreateEstimate)
	estimates.GET("", estimateHandler.ListEstimates)
	estimates.GET("/:id", estimateHandler.GetEstimate)
	estimates.PUT("/:id", estimateHandler.UpdateEstimate)
	estimates.DELETE("/:id", estimateHandler.DeleteEstimate)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	summary := v1.Group("/summary")
	summary.GET("", summaryHandler.ListMonths)
	summary.GET("/:year", summaryHandler.GetYear)
	summary.GET("/:year/:month", summaryHandler.GetMonth)

	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	return router
}
