package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/pothole-backend/internal/config"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/middleware"
	"github.com/roadwatch/pothole-backend/internal/services"
	"github.com/roadwatch/pothole-backend/internal/session"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    session.Store
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, sessions session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, cfg: cfg}
}

// Register handles citizen self-registration.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	return h.register(c, false)
}

// MunicipalRegister is the staff variant: same shape, staff flag forced true.
func (h *AuthHandler) MunicipalRegister(c *fiber.Ctx) error {
	return h.register(c, true)
}

func (h *AuthHandler) register(c *fiber.Ctx, staff bool) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.Register(&req, staff)
	if err != nil {
		// Duplicate username/email and missing fields are all client errors.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.UserID,
	})
}

// CreateStaffUser is the staff bootstrap endpoint.
func (h *AuthHandler) CreateStaffUser(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.CreateStaff(&req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create staff user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: "Staff user created successfully",
		UserID:  user.UserID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.login(c, false)
}

// MunicipalLogin requires the staff flag on top of a correct password; both
// failure modes share one error message.
func (h *AuthHandler) MunicipalLogin(c *fiber.Ctx) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c *fiber.Ctx, requireStaff bool) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.authService.Login(req.Username, req.Password, requireStaff)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid credentials",
		})
	}

	id, err := h.sessions.Create(c.Context(), session.Data{
		UserID:   user.UserID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
	}, h.cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to create session", "error", err, "user_id", user.UserID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(dto.LoginResponse{Message: "Login successful", IsStaff: user.IsStaff})
}

// Logout clears the server-side session and the cookie, then sends the
// browser back to the landing page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if id := c.Cookies(session.CookieName); id != "" {
		if err := h.sessions.Delete(c.Context(), id); err != nil {
			slog.Error("failed to delete session", "error", err)
		}
	}
	c.ClearCookie(session.CookieName)
	return c.Redirect("/", fiber.StatusFound)
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	sess, ok := middleware.SessionData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	profile, err := h.authService.Profile(sess.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch profile",
		})
	}
	return c.JSON(profile)
}
