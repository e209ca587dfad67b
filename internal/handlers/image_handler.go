package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/storage"
)

// Presigned retrieval URLs stay valid for one hour.
const presignExpiry = time.Hour

type ImageHandler struct {
	store storage.ObjectStorage
}

func NewImageHandler(store storage.ObjectStorage) *ImageHandler {
	return &ImageHandler{store: store}
}

// Serve redirects to a short-lived signed URL instead of proxying the image
// bytes through this service. Signing alone would not notice a missing
// object, so existence is checked first.
func (h *ImageHandler) Serve(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Image not found",
		})
	}

	exists, err := h.store.Exists(c.Context(), key)
	if err != nil || !exists {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Image not found",
		})
	}

	url, err := h.store.PresignGet(c.Context(), key, presignExpiry)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Image not found",
		})
	}

	return c.Redirect(url, fiber.StatusFound)
}
