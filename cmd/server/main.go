package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/redis/go-redis/v9"

	"github.com/Dhaval523/WorkJunction/internal/config"
	"github.com/Dhaval523/WorkJunction/internal/database"
	"github.com/Dhaval523/WorkJunction/internal/handlers"
	"github.com/Dhaval523/WorkJunction/internal/logging"
	"github.com/Dhaval523/WorkJunction/internal/middleware"
	"github.com/Dhaval523/WorkJunction/internal/ratelimit"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/Dhaval523/WorkJunction/internal/routes"
	"github.com/Dhaval523/WorkJunction/internal/services"
	"github.com/Dhaval523/WorkJunction/internal/sms"
	"github.com/Dhaval523/WorkJunction/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	production := cfg.AppEnv == "production"

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// OTP send counters
	var redisClient *redis.Client
	var otpLimiter ratelimit.Limiter = ratelimit.Unlimited{}
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			slog.Error("redis unavailable, OTP send limit disabled", "error", err)
		} else {
			redisClient = client
			otpLimiter = ratelimit.NewRedisLimiter(client, "otp_send", cfg.OTPSendLimit, cfg.OTPSendWindow)
		}
	} else {
		slog.Warn("REDIS_ADDR not set, OTP send limit disabled")
	}

	// SMS
	var sender sms.Sender
	switch {
	case cfg.TwilioConfigured():
		sender = sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromPhone)
	case production:
		slog.Error("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_PHONE are required in production")
		os.Exit(1)
	default:
		sender = sms.LogSender{}
	}

	// Document storage
	if !cfg.CloudinaryConfigured() {
		slog.Error("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
		os.Exit(1)
	}
	uploader, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		slog.Error("cloudinary init failed", "error", err)
		os.Exit(1)
	}
	uploadPolicy := storage.DefaultPolicy(cfg.MaxUploadBytes)

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	workerRepo := repository.NewWorkerRepository(database.DB)
	serviceRepo := repository.NewServiceRepository(database.DB)
	verificationRepo := repository.NewVerificationRepository(database.DB)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	otpService := services.NewOTPService(userRepo, sender, otpLimiter, cfg)
	workerService := services.NewWorkerService(workerRepo)
	searchService := services.NewSearchService(workerRepo, userRepo)
	offeringService := services.NewOfferingService(workerRepo, serviceRepo)
	verificationService := services.NewVerificationService(workerRepo, verificationRepo, uploader, uploadPolicy)

	// Handlers
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, otpService, cfg),
		Worker:       handlers.NewWorkerHandler(workerService, searchService),
		Verification: handlers.NewVerificationHandler(verificationService, uploadPolicy),
		Offering:     handlers.NewOfferingHandler(offeringService),
		Health:       handlers.NewHealthHandler(database.DB, redisClient),
		Legal:        handlers.NewLegalHandler(os.Getenv("SUPPORT_EMAIL")),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; the body limit leaves room for multipart framing so an
	// oversized file still reaches the upload policy
	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.MaxUploadBytes) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, userRepo, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
