package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"learnloop/internal/config"
	"learnloop/internal/handler"
	"learnloop/internal/middleware"
	"learnloop/internal/pkg/i18n"
	"learnloop/internal/pkg/logger"
	"learnloop/internal/repository"
	"learnloop/internal/service"
	"learnloop/internal/service/auth"
	"learnloop/migrations"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.IsDevelopment()); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Apply(context.Background(), db); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	mongoClient, mongoDB, err := config.NewMongoDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		logger.Warn("Failed to connect to MinIO, media upload will not work", zap.Error(err))
	}

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		logger.Warn("Failed to load translations, using English defaults", zap.Error(err))
	}

	repos := repository.NewRepositories(db, mongoDB, repository.Retry{Attempts: cfg.StoreRetryAttempts})
	if err := repos.Post.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("Failed to create post indexes", zap.Error(err))
	}

	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    32 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.Metrics())
	app.Use(middleware.Logger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	handler.Register(v1, h, middleware.AuthRequired(authService))
}
