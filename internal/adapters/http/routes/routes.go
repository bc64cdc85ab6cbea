package routes

import (
	"time"

	"enercash/internal/adapters/http/handlers"
	"enercash/internal/adapters/http/middleware"
	"enercash/internal/adapters/persistence/repositories"
	"enercash/internal/config"
	"enercash/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	billRepo := repositories.NewBillRepository(db)
	baselineRepo := repositories.NewBaselineRepository(db)
	cashbackRepo := repositories.NewCashbackRepository(db)

	// Services
	baselineService := services.NewBaselineService(billRepo)
	cashbackService := services.NewCashbackService(billRepo, baselineRepo, cashbackRepo, baselineService)
	billService := services.NewBillService(billRepo, cashbackService)
	authService := services.NewAuthService(userRepo, cfg)
	dashboardService := services.NewDashboardService(userRepo, billRepo, cashbackRepo)
	reportService := services.NewReportService(cashbackRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	billHandler := handlers.NewBillHandler(billService)
	cashbackHandler := handlers.NewCashbackHandler(cashbackService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Bill routes
	billRoutes := apiV1.Group("/bills", middleware.AuthMiddleware(cfg))
	billRoutes.Post("/", middleware.CustomerOnly(), billHandler.Submit)
	billRoutes.Get("/", middleware.PrivateCacheHeaders(30*time.Second), billHandler.List)

	// Cashback routes
	cashbackRoutes := apiV1.Group("/cashbacks", middleware.AuthMiddleware(cfg))
	cashbackRoutes.Get("/", middleware.PrivateCacheHeaders(30*time.Second), cashbackHandler.List)
	cashbackRoutes.Post("/process", cashbackHandler.Process)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard", middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.GetMyDashboard)
	dashboardRoutes.Get("/user", dashboardHandler.GetCustomerDashboard)
	dashboardRoutes.Get("/bank", middleware.BankOnly(), dashboardHandler.GetBankDashboard)

	// Bank admin routes
	adminRoutes := apiV1.Group("/admin", middleware.AuthMiddleware(cfg), middleware.BankOnly())
	adminRoutes.Put("/cashbacks/:id/approve", cashbackHandler.Approve)
	adminRoutes.Put("/cashbacks/:id/pay", cashbackHandler.Pay)
	adminRoutes.Get("/reports/cashbacks/:period", middleware.NoCacheHeaders(), reportHandler.GetMonthlyReport)
}
