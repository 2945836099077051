package routes

import (
	"bu-ethesis/internal/adapters/http/handlers"
	"bu-ethesis/internal/adapters/http/middleware"
	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/adapters/storage"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/core/services"
	"bu-ethesis/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, store storage.Store, cfg *config.Config, log logging.Logger) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	thesisRepo := repositories.NewThesisRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, cfg, log)
	catalogService := services.NewCatalogService(thesisRepo, store, log)
	curationService := services.NewCurationService(thesisRepo, store, cfg.Upload, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	curationHandler := handlers.NewCurationHandler(catalogService, curationService, cfg.Upload)

	// Health check & docs
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Every page below knows who is calling
	app.Use(middleware.SessionLoader(authService))

	setupPublicRoutes(app, catalogHandler, authHandler, cfg)
	setupCurationRoutes(app, curationHandler, authHandler)
}

// setupPublicRoutes configures the anonymous catalog and login routes
func setupPublicRoutes(router fiber.Router, catalog *handlers.CatalogHandler, auth *handlers.AuthHandler, cfg *config.Config) {
	router.Get("/", catalog.Index)
	router.Get("/thesis/:id<int>", catalog.View)
	router.Get("/download/:id<int>", catalog.Download)

	router.Get("/login", auth.LoginForm)
	router.Post("/login", middleware.AuthRateLimiter(cfg), auth.Login)
}

// setupCurationRoutes configures the routes that need a logged-in session
func setupCurationRoutes(router fiber.Router, curation *handlers.CurationHandler, auth *handlers.AuthHandler) {
	requireSession := middleware.RequireSession()
	private := middleware.PrivateView()

	router.Get("/logout", requireSession, auth.Logout)
	router.Post("/password", requireSession, middleware.StrictRateLimiter(), auth.ChangePassword)

	router.Get("/dashboard", requireSession, private, curation.Dashboard)
	router.Get("/add", requireSession, private, curation.AddForm)
	router.Post("/add", requireSession, curation.Add)
	router.Get("/edit/:id<int>", requireSession, private, curation.EditForm)
	router.Post("/edit/:id<int>", requireSession, curation.Edit)
	router.Get("/delete/:id<int>", requireSession, curation.Delete)
}
