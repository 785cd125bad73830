package main

import (
	"fmt"
	"net/http"
	"os"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/handlers"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/pagination"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "expensetracker/internal/docs" // Import swagger docs
)

// @title           Expense Tracker API
// @version         1.0
// @description     A REST API for tracking personal expenses, with filtered listings, pagination, and category summaries.

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	limits := pagination.Limits{
		DefaultPageSize: appConfig.DefaultPageSize,
		MaxPageSize:     appConfig.MaxPageSize,
	}
	expenseService := services.NewExpenseService(db, limits)
	summaryService := services.NewSummaryService(db)
	categoryService := services.NewCategoryService(db)

	// Initialize handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(corsMiddleware(appConfig.CORSOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Expense Tracker API is running"})
	})

	// API group
	api := router.Group("/api")

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/summary", summaryHandler.GetSummary)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)

	log.Infof("Starting expense tracker server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// corsMiddleware allows the configured origins. A single "*" entry allows
// every origin; otherwise the request origin is echoed back when it matches.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 1 && origins[0] == "*"

	return func(c *gin.Context) {
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			origin := c.GetHeader("Origin")
			for _, allowed := range origins {
				if allowed == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
