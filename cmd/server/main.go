package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/adapters/http/routes"
	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "clinicdesk/docs" // Swagger docs
)

// @title ClinicDesk API
// @version 1.0
// @description Clinic scheduling: departments, doctor availability, appointment booking and treatments.

// @contact.name API Support
// @contact.email admin@hospital.com

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session_token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitLogger(cfg.AppMode); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer config.SyncLogger()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		config.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		config.Log.Fatal("Failed to auto migrate", zap.Error(err))
	}
	config.Log.Info("Database migration completed")

	// Default admin and departments
	if err := config.NewSeeder(cfg.Clinic).Run(context.Background(), db); err != nil {
		config.Log.Warn("Failed to seed default data", zap.Error(err))
	}

	svc := routes.NewServices(db, cfg, services.NewNotificationService(config.Log))

	// Reset token purge and appointment reminders
	if err := svc.Cron.Start(); err != nil {
		config.Log.Fatal("Failed to start cron service", zap.Error(err))
	}
	defer svc.Cron.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ClinicDesk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, svc, cfg, config.HealthCheck)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	config.Log.Info("Server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		config.Log.Fatal("Failed to start server", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	config.Log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		config.Log.Error("Error during shutdown", zap.Error(err))
	}
	config.Log.Info("Server stopped gracefully")
}
