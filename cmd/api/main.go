package main

import (
	"fmt"
	"net/http"
	"os"

	"peakfinance/internal/config"
	"peakfinance/internal/database"
	"peakfinance/internal/handlers"
	"peakfinance/internal/logger"
	"peakfinance/internal/middleware"
	"peakfinance/internal/provider"
	"peakfinance/internal/services"
	"peakfinance/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "peakfinance/internal/docs" // Import swagger docs
)

// @title           Peak Finance API
// @version         1.0
// @description     Peak Finance provides educational personal-finance guidance: loan affordability calculators, inflation forecasts, rule-based insights, and a compliance-gated AI advisor.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Register custom validation tags
	validator.Register()

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

	// Select the AI provider once at startup; missing credentials degrade to
	// the offline provider.
	aiProvider := provider.FromConfig(appConfig, &http.Client{Timeout: appConfig.AITimeout})
	log.Infof("AI provider: %s", aiProvider.Name())

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, appConfig)
	expenseService := services.NewExpenseService(db)
	debtService := services.NewDebtService(db)
	goalService := services.NewGoalService(db)
	aiRuleService := services.NewAIRuleService(db)
	consentService := services.NewConsentService(db, auditService)
	plannerService := services.NewPlannerService(appConfig)
	dashboardService := services.NewDashboardService(db, appConfig)
	insightService := services.NewInsightService(db)
	advisorService := services.NewAdvisorService(db, appConfig, aiProvider, auditService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	debtHandler := handlers.NewDebtHandler(debtService)
	goalHandler := handlers.NewGoalHandler(goalService)
	calcHandler := handlers.NewCalcHandler(plannerService, dashboardService, appConfig)
	advisorHandler := handlers.NewAdvisorHandler(advisorService, insightService, aiRuleService, consentService)

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

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Debt routes
	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/:id", debtHandler.GetDebt)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Calculator routes
	calc := protected.Group("/calc")
	calc.POST("/loan-pre-assessment", calcHandler.LoanPreAssessment)
	calc.POST("/loan-payoff-plan", calcHandler.LoanPayoffPlan)
	calc.POST("/inflation-forecast", calcHandler.InflationForecast)
	calc.GET("/dashboard", calcHandler.Dashboard)

	// Advisor routes
	ai := protected.Group("/ai")
	ai.POST("/ask", advisorHandler.Ask)
	ai.GET("/insights", advisorHandler.Insights)
	ai.GET("/rules", advisorHandler.GetRules)
	ai.PUT("/rules", advisorHandler.UpdateRules)

	// Consent routes
	protected.GET("/consents", advisorHandler.GetConsents)
	protected.PUT("/consents", advisorHandler.SetConsent)

	log.Infof("Starting Peak Finance backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
