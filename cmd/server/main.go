package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "jobunya-carrental-backend/internal/api/http"
	"jobunya-carrental-backend/internal/config"
	"jobunya-carrental-backend/internal/logger"
	"jobunya-carrental-backend/internal/metrics"
	"jobunya-carrental-backend/internal/repository/postgres"
	"jobunya-carrental-backend/internal/security"
	"jobunya-carrental-backend/internal/service"
	"jobunya-carrental-backend/internal/session"
	"jobunya-carrental-backend/internal/storage"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	logger.Info("Redis connection established", "address", cfg.Redis.Address)
	sessions := session.NewRedisStore(redisClient, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.ActionTokenSecret)

	// Initialize Storage Service
	storageService, err := storage.NewLocalService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.SiteBaseURL,
	)

	// Initialize Services
	actionTokenTTL := time.Duration(cfg.Auth.ActionTokenTTLMinutes) * time.Minute
	authSvc := service.NewAuthService(store.UserRepository, sessions, tokenManager, emailSvc, actionTokenTTL)
	userSvc := service.NewUserService(store.UserRepository)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository, storageService)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.LocationRepository,
		store.UserRepository,
		emailSvc,
	)
	locationSvc := service.NewLocationService(store.LocationRepository)
	damageSvc := service.NewDamageReportService(
		store.DamageReportRepository,
		store.BookingRepository,
		store.UserRepository,
		storageService,
		emailSvc,
	)

	// Initialize HTTP handlers and router
	metrics.Register()
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:    httpapi.NewAuthHandler(authSvc, userSvc),
		Vehicle: httpapi.NewVehicleHandler(vehicleSvc),
		Booking: httpapi.NewBookingHandler(bookingSvc),
		Locs:    httpapi.NewLocationHandler(locationSvc),
		Damage:  httpapi.NewDamageReportHandler(damageSvc),
	}, sessions, storageService)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
