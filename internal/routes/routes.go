package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/roadwatch/pothole-backend/internal/handlers"
	"github.com/roadwatch/pothole-backend/internal/middleware"
	"github.com/roadwatch/pothole-backend/internal/session"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	db *gorm.DB,
	sessions session.Store,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	staffHandler *handlers.StaffHandler,
	imageHandler *handlers.ImageHandler,
	healthHandler *handlers.HealthHandler,
) {
	loginRequired := middleware.SessionRequired(sessions)
	staffRequired := middleware.StaffRequired(sessions, db)

	// Auth rate limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "pothole-report-system", "status": "ok"})
	})

	// Authentication (paths kept compatible with the original frontend)
	app.Post("/register", authLimiter, authHandler.Register)
	app.Post("/login", authLimiter, authHandler.Login)
	app.Get("/logout", authHandler.Logout)
	app.Post("/municipal-register", authLimiter, authHandler.MunicipalRegister)
	app.Post("/municipal-login", authLimiter, authHandler.MunicipalLogin)
	app.Post("/create-staff-user", authLimiter, authHandler.CreateStaffUser)

	// Report submission (any logged-in user)
	app.Post("/report-pothole", loginRequired, reportHandler.Submit)

	// Image retrieval via presigned redirect
	app.Get("/image/*", imageHandler.Serve)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/public-reports", reportHandler.PublicReports)

	// Citizen endpoints
	api.Get("/my-reports", loginRequired, reportHandler.MyReports)
	api.Get("/user-profile", loginRequired, authHandler.Profile)

	// Municipal staff endpoints
	api.Get("/pending-reports", staffRequired, staffHandler.PendingReports)
	api.Get("/all-reports", staffRequired, staffHandler.AllReports)
	api.Post("/verify-report", staffRequired, staffHandler.VerifyReport)
	api.Post("/update-progress", staffRequired, staffHandler.UpdateProgress)
}
