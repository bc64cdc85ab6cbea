package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"enercash/internal/adapters/http/middleware"
	"enercash/internal/adapters/http/routes"
	"enercash/internal/adapters/persistence/models"
	"enercash/internal/adapters/persistence/repositories"
	"enercash/internal/config"
	"enercash/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "enercash/docs" // Swagger docs
)

// @title EnerCash API
// @version 1.0
// @description Cashback por ahorro de energía - EnerCash v1.0 API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email soporte@enercash.mx

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.enercash.mx
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed sample data in development
	if cfg.IsDev() {
		if err := config.SeedDatabase(db); err != nil {
			log.Printf("⚠️ Warning: Failed to seed database: %v", err)
		}
	}

	// Start settlement cron (recomputes previous month on the 1st, 02:00)
	billRepo := repositories.NewBillRepository(db)
	baselineRepo := repositories.NewBaselineRepository(db)
	cashbackRepo := repositories.NewCashbackRepository(db)
	baselineService := services.NewBaselineService(billRepo)
	cashbackService := services.NewCashbackService(billRepo, baselineRepo, cashbackRepo, baselineService)
	settlementCron := services.NewSettlementCron(billRepo, cashbackService)
	settlementCron.Start()
	defer settlementCron.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EnerCash API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
