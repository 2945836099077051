package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bu-ethesis/internal/adapters/http/middleware"
	"bu-ethesis/internal/adapters/http/routes"
	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"

	_ "bu-ethesis/docs" // Swagger docs
)

// @title BU E-Thesis Portal API
// @version 1.0
// @description Public thesis catalog with an authenticated curation dashboard.
// @description Views answer with JSON; form submissions answer with 303 redirects.

// @contact.name Department Library

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	appLog := logging.New(cfg.AppMode)

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the default account once
	if err := config.NewSeeder(db, cfg.Admin).Run(ctx); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	// Attachment storage
	store, err := config.OpenAttachmentStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open attachment store: %v", err)
	}

	// Create Fiber app; the body limit leaves room for the form fields next to the PDF
	app := fiber.New(fiber.Config{
		AppName:      "BU E-Thesis Portal v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, store, cfg, appLog)

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
