package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"teslo/internal/config"
	"teslo/internal/database"
	"teslo/internal/files"
	"teslo/internal/handlers"
	applogger "teslo/internal/logger"
	"teslo/internal/repositories"
	"teslo/internal/seed"
	"teslo/internal/server"
	"teslo/internal/services"
	"teslo/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := applogger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Database ---
	db, err := database.Open(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// --- Initialize RabbitMQ Client ---
	// Catalog events are optional; an empty RABBITMQ_URL disables them.
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange}, logger)
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiry, logger)
	productService := services.NewProductService(productRepo, publisher, logger)

	store, err := files.NewStore(cfg.Files.UploadDir, cfg.Files.HostAPI)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	// --- Initialize Handlers ---
	h := server.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Products: handlers.NewProductHandler(productService, authService),
		Files:    handlers.NewFilesHandler(store, logger),
	}
	if !cfg.IsProduction() {
		h.Seed = handlers.NewSeedHandler(seed.NewService(userRepo, productService, logger))
	}

	app := server.New(cfg, h)

	// --- Start HTTP Server ---
	logger.Info("starting server", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error("error during Fiber shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server gracefully stopped")
}
