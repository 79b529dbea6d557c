package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/phalkmin/WP-AutoInsight/internal/api/handlers"
	"github.com/phalkmin/WP-AutoInsight/internal/config"
	"github.com/phalkmin/WP-AutoInsight/internal/repository"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, service *generation.Service, creds generation.CredentialStore, repos *repository.Factory, cfg *config.Config, logger generation.Logger) {
	// Initialize handlers
	postHandler := handlers.NewPostHandler(service, repos, cfg, logger)
	modelsHandler := handlers.NewModelsHandler(creds, repos, logger)
	settingsHandler := handlers.NewSettingsHandler(repos)
	categoryHandler := handlers.NewCategoryHandler(repos)

	// API group
	api := app.Group("/api")

	// Health check route
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	// Post routes
	posts := api.Group("/posts")
	posts.Post("/generate", postHandler.GeneratePost)
	posts.Get("/", postHandler.ListPosts)
	posts.Get("/runs", postHandler.ListRecentRuns)
	posts.Get("/:id", postHandler.GetPost)

	// Model catalog
	api.Get("/models", modelsHandler.ListModels)

	// Settings
	api.Get("/settings", settingsHandler.GetSettings)
	api.Put("/settings", settingsHandler.UpdateSettings)

	// Categories
	api.Get("/categories", categoryHandler.ListCategories)
	api.Post("/categories", categoryHandler.CreateCategory)
}
