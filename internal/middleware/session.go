package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/models"
	"github.com/roadwatch/pothole-backend/internal/session"
	"gorm.io/gorm"
)

const sessionLocal = "session"

// SessionRequired resolves the session cookie into a session.Data local.
// API routes get a 401 JSON body; page-style routes redirect to /login.
func SessionRequired(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(session.CookieName)
		if id == "" {
			return unauthorized(c)
		}

		data, err := store.Get(c.Context(), id)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(sessionLocal, data)
		return c.Next()
	}
}

// StaffRequired gates staff routes. The staff flag is re-checked against the
// database rather than trusted from the session snapshot, so revoking staff
// takes effect on the next request.
func StaffRequired(store session.Store, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(session.CookieName)
		if id == "" {
			return unauthorized(c)
		}

		data, err := store.Get(c.Context(), id)
		if err != nil {
			return unauthorized(c)
		}

		var user models.User
		if err := db.Where("user_id = ?", data.UserID).First(&user).Error; err != nil || !user.IsStaff {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Staff access required",
			})
		}

		c.Locals(sessionLocal, data)
		return c.Next()
	}
}

// SessionData returns the session payload placed by SessionRequired or
// StaffRequired.
func SessionData(c *fiber.Ctx) (session.Data, bool) {
	data, ok := c.Locals(sessionLocal).(session.Data)
	return data, ok
}

func unauthorized(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.Redirect("/login", fiber.StatusFound)
}
