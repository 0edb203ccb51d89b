package routes

import (
	"time"

	"github.com/Dhaval523/WorkJunction/internal/config"
	"github.com/Dhaval523/WorkJunction/internal/handlers"
	"github.com/Dhaval523/WorkJunction/internal/metrics"
	"github.com/Dhaval523/WorkJunction/internal/middleware"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Worker       *handlers.WorkerHandler
	Verification *handlers.VerificationHandler
	Offering     *handlers.OfferingHandler
	Health       *handlers.HealthHandler
	Legal        *handlers.LegalHandler
}

func Setup(app *fiber.App, cfg *config.Config, users repository.UserRepository, h Handlers) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter, per IP
	if cfg.APIRateLimit > 0 {
		api.Use(ipLimiter(cfg.APIRateLimit))
	}

	api.Get("/health", h.Health.Check)
	api.Get("/categories", handlers.Categories)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(users, cfg)
	workerOnly := middleware.RequireRole(models.RoleWorker)

	// Auth: stricter per-IP limit
	auth := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(ipLimiter(cfg.AuthRateLimit))
	}
	auth.Post("/sign-up", h.Auth.SignUp)
	auth.Post("/sign-in", h.Auth.SignIn)
	auth.Post("/login", h.Auth.SignIn)
	auth.Post("/log-out", h.Auth.LogOut)
	auth.Get("/log-out", h.Auth.LogOut)
	auth.Post("/logout", h.Auth.LogOut)
	auth.Get("/user", jwt, h.Auth.CurrentUser)
	auth.Post("/send-otp", jwt, h.Auth.SendOTP)
	auth.Post("/verify-otp", jwt, h.Auth.VerifyOTP)

	// Workers: every route needs a session
	workers := api.Group("/workers", jwt)
	workers.Get("/search", h.Worker.Search)
	workers.Patch("/verify/:workerId", admin, h.Verification.Review)
	workers.Patch("/stage/:workerId", admin, h.Verification.SetStage)

	workers.Get("/", workerOnly, h.Worker.GetProfile)
	workers.Patch("/profile", workerOnly, h.Worker.UpdateProfile)
	workers.Post("/accept-tnc", workerOnly, h.Verification.AcceptTerms)
	workers.Post("/upload-aadhar", workerOnly, h.Verification.UploadAadhar)
	workers.Post("/upload-police-verification", workerOnly, h.Verification.UploadPolice)
	workers.Post("/upload-profile-photo", workerOnly, h.Verification.UploadPhoto)
	workers.Get("/verification-status", workerOnly, h.Verification.VerificationStatus)
	workers.Get("/current-stage", workerOnly, h.Verification.CurrentStage)

	workers.Post("/services", workerOnly, h.Offering.Create)
	workers.Get("/services", workerOnly, h.Offering.List)
	workers.Patch("/services/:serviceId", workerOnly, h.Offering.Update)
	workers.Delete("/services/:serviceId", workerOnly, h.Offering.Delete)

	// Review back office
	adminGroup := api.Group("/admin", jwt, admin)
	adminGroup.Get("/workers", h.Verification.Queue)
	adminGroup.Get("/workers/:workerId/verifications", h.Verification.History)
}

func ipLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
