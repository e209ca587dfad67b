package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidStatus  = errors.New("invalid status")
)

// Credit amounts for staff-driven workflow events.
const (
	ApprovalCredits   = 10
	CompletionCredits = 5
)

type VerificationService struct {
	db *gorm.DB
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// Verify applies a staff decision to a report. The status change, any credit
// grant and the appended verification row share one transaction: if the
// verification insert fails, the status change and credits roll back.
func (s *VerificationService) Verify(req *dto.VerifyReportRequest, fallbackVerifier string) error {
	decision, targetStatus, err := mapAction(req.Action)
	if err != nil {
		return err
	}

	var report models.PotholeReport
	if err := s.db.Where("report_id = ?", req.ReportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	verifiedBy := req.VerifiedBy
	if verifiedBy == "" {
		verifiedBy = fallbackVerifier
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if decision == models.DecisionApproved {
			// Conditional transition: a concurrent second approve matches
			// zero rows and grants nothing.
			result := tx.Model(&models.PotholeReport{}).
				Where("report_id = ? AND status <> ?", req.ReportID, models.StatusVerified).
				Update("status", models.StatusVerified)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 1 {
				if err := grantCredits(tx, report.UserID, ApprovalCredits); err != nil {
					return err
				}
			}
		} else {
			if err := tx.Model(&models.PotholeReport{}).
				Where("report_id = ?", req.ReportID).
				Update("status", targetStatus).Error; err != nil {
				return err
			}
		}

		verification := models.MunicipalVerification{
			ReportID:            req.ReportID,
			VerifiedBy:          verifiedBy,
			Decision:            decision,
			Notes:               req.Notes,
			EstimatedRepairDate: parseRepairDate(req.EstimatedRepairDate),
		}
		if err := tx.Create(&verification).Error; err != nil {
			return fmt.Errorf("failed to record verification: %w", err)
		}
		return nil
	})
}

// UpdateProgress sets the workflow status directly. Any value in the status
// enum domain is accepted; COMPLETED additionally awards the owner a bonus,
// guarded so repeating COMPLETED cannot grant twice.
func (s *VerificationService) UpdateProgress(req *dto.UpdateProgressRequest) error {
	status, ok := models.ParseReportStatus(req.Status)
	if !ok {
		return ErrInvalidStatus
	}

	var report models.PotholeReport
	if err := s.db.Where("report_id = ?", req.ReportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if status == models.StatusCompleted {
			result := tx.Model(&models.PotholeReport{}).
				Where("report_id = ? AND status <> ?", req.ReportID, models.StatusCompleted).
				Update("status", models.StatusCompleted)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 1 {
				return grantCredits(tx, report.UserID, CompletionCredits)
			}
			return nil
		}

		return tx.Model(&models.PotholeReport{}).
			Where("report_id = ?", req.ReportID).
			Update("status", status).Error
	})
}

// Verifications returns the append-only audit trail for a report, newest
// first.
func (s *VerificationService) Verifications(reportID uuid.UUID) ([]models.MunicipalVerification, error) {
	var rows []models.MunicipalVerification
	if err := s.db.Where("report_id = ?", reportID).Order("verified_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func mapAction(action string) (models.VerificationDecision, models.ReportStatus, error) {
	switch action {
	case "approve":
		return models.DecisionApproved, models.StatusVerified, nil
	case "reject":
		return models.DecisionRejected, models.StatusRejected, nil
	case "need_info":
		// Returned to the review queue.
		return models.DecisionNeedInfo, models.StatusPending, nil
	}
	return "", "", ErrInvalidAction
}

// parseRepairDate accepts YYYY-MM-DD; anything else yields no date.
func parseRepairDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
