package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/middleware"
	"github.com/roadwatch/pothole-backend/internal/services"
)

// StaffHandler serves the municipal review endpoints. All routes behind it
// sit behind the staff middleware.
type StaffHandler struct {
	reportService       *services.ReportService
	verificationService *services.VerificationService
}

func NewStaffHandler(reportService *services.ReportService, verificationService *services.VerificationService) *StaffHandler {
	return &StaffHandler{reportService: reportService, verificationService: verificationService}
}

func (h *StaffHandler) PendingReports(c *fiber.Ctx) error {
	reports, err := h.reportService.PendingReports()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}
	return c.JSON(reports)
}

func (h *StaffHandler) AllReports(c *fiber.Ctx) error {
	reports, err := h.reportService.AllReports()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}
	return c.JSON(reports)
}

func (h *StaffHandler) VerifyReport(c *fiber.Ctx) error {
	var req dto.VerifyReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	// The reviewing staff member's username backs verified_by when the
	// client does not name one.
	fallback := "Unknown"
	if sess, ok := middleware.SessionData(c); ok {
		fallback = sess.Username
	}

	if err := h.verificationService.Verify(&req, fallback); err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidAction):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("report verification failed", "error", err, "report_id", req.ReportID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update report",
		})
	}

	return c.JSON(fiber.Map{"message": "Report verification updated successfully"})
}

func (h *StaffHandler) UpdateProgress(c *fiber.Ctx) error {
	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.verificationService.UpdateProgress(&req); err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("progress update failed", "error", err, "report_id", req.ReportID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update progress",
		})
	}

	return c.JSON(fiber.Map{"message": "Progress updated successfully"})
}
