package handlers

import (
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/middleware"
	"github.com/roadwatch/pothole-backend/internal/services"
	"github.com/roadwatch/pothole-backend/internal/storage"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Submit accepts the multipart pothole report form: an image plus metadata.
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	sess, ok := middleware.SessionData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No image file provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No image file provided",
		})
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "No image file provided",
		})
	}

	in := dto.SubmitReportInput{
		ImageName:    fileHeader.Filename,
		ImageBytes:   imageBytes,
		Description:  c.FormValue("description"),
		LocationName: c.FormValue("location_name"),
		Latitude:     parseCoord(c.FormValue("latitude")),
		Longitude:    parseCoord(c.FormValue("longitude")),
		Severity:     c.FormValue("severity"),
		BaseURL:      c.BaseURL(),
	}

	report, err := h.reportService.Submit(c.Context(), sess.UserID, &in)
	if err != nil {
		if errors.Is(err, services.ErrMissingImage) || errors.Is(err, services.ErrInvalidSeverity) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, storage.ErrStorageUnavailable) {
			slog.Error("image upload failed", "error", err, "user_id", sess.UserID.String())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to upload image",
			})
		}
		slog.Error("report submission failed", "error", err, "user_id", sess.UserID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubmitReportResponse{
		Message:  "Report submitted successfully",
		ReportID: report.ReportID,
	})
}

func (h *ReportHandler) MyReports(c *fiber.Ctx) error {
	sess, ok := middleware.SessionData(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reports, err := h.reportService.MyReports(sess.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}
	return c.JSON(reports)
}

// PublicReports is unauthenticated: verified and in-repair reports only.
func (h *ReportHandler) PublicReports(c *fiber.Ctx) error {
	reports, err := h.reportService.PublicReports()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}
	return c.JSON(reports)
}

// parseCoord turns an optional form field into an optional float.
func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
