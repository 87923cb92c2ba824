package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parkledger/internal/config"
	"parkledger/internal/database"
	"parkledger/internal/handlers"
	"parkledger/internal/logger"
	"parkledger/internal/middleware"
	"parkledger/internal/services"
	"parkledger/internal/validator"
)

// @title           ParkLedger API
// @version         1.0
// @description     ParkLedger manages municipal park budgets: budget headers per fiscal year, categorized income and expense line items with monthly breakdowns, and always-consistent rolled-up totals.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	totalsService := services.NewTotalsService(db)
	budgetService := services.NewBudgetService(db)
	lineService := services.NewLineService(db, totalsService)
	catalogService := services.NewCatalogService(db)
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	lineHandler := handlers.NewLineHandler(lineService, auditService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	authHandler := handlers.NewAuthHandler(userService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	v1.GET("/profile", middleware.AuthMiddleware(), authHandler.GetProfile)

	// Budget routes: reads and creates are public, header mutations
	// require authentication.
	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.PUT("/:id", middleware.AuthMiddleware(), budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", middleware.AuthMiddleware(), budgetHandler.DeleteBudget)

	// Line routes scoped to a budget
	budgets.GET("/:id/lines", lineHandler.GetBudgetLines)
	budgets.POST("/:id/income-lines", lineHandler.CreateIncomeLine)
	budgets.POST("/:id/expenses-lines", lineHandler.CreateExpenseLine)
	budgets.POST("/:id/lines", lineHandler.CreateLine)

	// Line routes addressed by line ID
	lines := v1.Group("/budget-lines")
	lines.PUT("/:id", middleware.AuthMiddleware(), lineHandler.UpdateLine)
	lines.DELETE("/:id", middleware.AuthMiddleware(), lineHandler.DeleteLine)

	// Catalog routes (read-only reference data)
	v1.GET("/municipalities", catalogHandler.ListMunicipalities)
	v1.GET("/municipalities/:id/parks", catalogHandler.ListParks)
	v1.GET("/budget-categories", catalogHandler.ListCategories)

	log.Infof("Starting ParkLedger backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
