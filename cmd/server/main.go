package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/phalkmin/WP-AutoInsight/internal/api"
	"github.com/phalkmin/WP-AutoInsight/internal/config"
	"github.com/phalkmin/WP-AutoInsight/internal/database"
	"github.com/phalkmin/WP-AutoInsight/internal/repository"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/catalog"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/prompts"
	"github.com/phalkmin/WP-AutoInsight/internal/service/generation/providers"
	"github.com/phalkmin/WP-AutoInsight/internal/service/mail"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize configuration
	cfg := config.NewConfig()

	// Connect to PostgreSQL
	db, err := database.InitPostgreSQL(cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := database.InitRedis(cfg.RedisURI)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	repos := repository.NewRepositoryFactory(db.DB, redisClient.Client)

	svcLogger := &generation.DefaultLogger{}

	// Environment keys win over stored settings
	creds := &generation.Credentials{
		OpenAI:    cfg.OpenAIAPIKey,
		Claude:    cfg.ClaudeAPIKey,
		Gemini:    cfg.GeminiAPIKey,
		Stability: cfg.StabilityAPIKey,
		Settings:  repos.SettingRepository,
	}

	customEndpoint := repos.SettingRepository.Get(generation.SettingCustomEndpoint, "")
	openAI := providers.NewOpenAIProvider(customEndpoint, svcLogger)

	service := generation.NewService(generation.Options{
		Builder:     prompts.NewBuilder(cfg.SiteName, cfg.SiteDescription),
		Credentials: creds,
		Settings:    repos.SettingRepository,
		Posts:       repos.PostRepository,
		Media:       repos.PostRepository,
		Taxonomy:    repos.CategoryRepository,
		Mailer:      mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom),
		AdminEmail:  cfg.AdminEmail,
		TextProviders: map[catalog.Provider]generation.TextProvider{
			catalog.ProviderOpenAI: openAI,
			catalog.ProviderClaude: providers.NewClaudeProvider("", svcLogger),
			catalog.ProviderGemini: providers.NewGeminiProvider(svcLogger),
		},
		ImageProviders: map[catalog.Provider]generation.ImageProvider{
			catalog.ProviderOpenAI:    openAI,
			catalog.ProviderStability: providers.NewStabilityProvider("", cfg.UploadDir, cfg.UploadBaseURL, svcLogger),
		},
		Logger: svcLogger,
	})

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH",
	}))

	// Generated images are served from the upload directory
	app.Static("/uploads", cfg.UploadDir)

	// Setup routes
	api.SetupRoutes(app, service, creds, repos, cfg, svcLogger)

	// Settings-driven scheduled generation
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go service.StartScheduler(schedulerCtx, cfg.ScheduleInterval)

	// Start server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
