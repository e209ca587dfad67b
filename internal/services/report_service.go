package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/models"
	"github.com/roadwatch/pothole-backend/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrMissingImage    = errors.New("no image file provided")
	ErrInvalidSeverity = errors.New("invalid severity")
)

// SubmissionCredits is granted on submission regardless of the eventual
// verification outcome, to incentivize reporting.
const SubmissionCredits = 5

const (
	listingTimeFormat = "2006-01-02 15:04"
	publicDateFormat  = "2006-01-02"
)

type ReportService struct {
	db    *gorm.DB
	store storage.ObjectStorage
}

func NewReportService(db *gorm.DB, store storage.ObjectStorage) *ReportService {
	return &ReportService{db: db, store: store}
}

// Submit uploads the image first and only then touches the database, so a
// failed upload never leaves a report row behind. The report insert and the
// credit grant share one transaction.
func (s *ReportService) Submit(ctx context.Context, userID uuid.UUID, in *dto.SubmitReportInput) (*models.PotholeReport, error) {
	if len(in.ImageBytes) == 0 {
		return nil, ErrMissingImage
	}

	severity, ok := models.ParseSeverity(in.Severity)
	if !ok {
		return nil, ErrInvalidSeverity
	}

	key := storage.KeyPrefix + uuid.NewString() + "_" + sanitizeFilename(in.ImageName)
	if _, err := s.store.Upload(ctx, key, in.ImageBytes); err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	report := models.PotholeReport{
		ReportID:       uuid.New(),
		UserID:         userID,
		ImageURL:       strings.TrimSuffix(in.BaseURL, "/") + "/image/" + key,
		StorageKey:     key,
		Description:    in.Description,
		LocationName:   in.LocationName,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Severity:       severity,
		Status:         models.StatusPending,
		CreditsAwarded: SubmissionCredits,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		return grantCredits(tx, userID, SubmissionCredits)
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *ReportService) MyReports(userID uuid.UUID) ([]dto.ReportSummary, error) {
	var reports []models.PotholeReport
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}

	items := make([]dto.ReportSummary, len(reports))
	for i, r := range reports {
		items[i] = dto.ReportSummary{
			ReportID:       r.ReportID,
			Description:    r.Description,
			LocationName:   r.LocationName,
			Severity:       string(r.Severity),
			Status:         string(r.Status),
			CreditsAwarded: r.CreditsAwarded,
			CreatedAt:      r.CreatedAt.Format(listingTimeFormat),
			ImageURL:       r.ImageURL,
		}
	}
	return items, nil
}

// PendingReports lists PENDING reports with owner usernames, newest first.
func (s *ReportService) PendingReports() ([]dto.StaffReportItem, error) {
	return s.staffListing(s.db.Where("pothole_reports.status = ?", models.StatusPending))
}

// AllReports lists every report with owner usernames, newest first.
func (s *ReportService) AllReports() ([]dto.StaffReportItem, error) {
	return s.staffListing(s.db)
}

func (s *ReportService) staffListing(query *gorm.DB) ([]dto.StaffReportItem, error) {
	var rows []struct {
		models.PotholeReport
		Username string
	}

	err := query.Table("pothole_reports").
		Select("pothole_reports.*, users.username").
		Joins("JOIN users ON users.user_id = pothole_reports.user_id").
		Order("pothole_reports.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.StaffReportItem, len(rows))
	for i, r := range rows {
		items[i] = dto.StaffReportItem{
			ReportID:     r.ReportID,
			Username:     r.Username,
			Description:  r.Description,
			LocationName: r.LocationName,
			Severity:     string(r.Severity),
			Status:       string(r.Status),
			CreatedAt:    r.CreatedAt.Format(listingTimeFormat),
			ImageURL:     r.ImageURL,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
		}
	}
	return items, nil
}

// PublicReports lists reports citizens may see: VERIFIED, IN_PROGRESS and
// COMPLETED only. PENDING and REJECTED never appear here.
func (s *ReportService) PublicReports() ([]dto.PublicReportItem, error) {
	var reports []models.PotholeReport
	err := s.db.
		Where("status IN ?", []models.ReportStatus{models.StatusVerified, models.StatusInProgress, models.StatusCompleted}).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.PublicReportItem, len(reports))
	for i, r := range reports {
		items[i] = dto.PublicReportItem{
			ReportID:     r.ReportID,
			Description:  r.Description,
			LocationName: r.LocationName,
			Severity:     string(r.Severity),
			Status:       string(r.Status),
			CreatedAt:    r.CreatedAt.Format(publicDateFormat),
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
		}
	}
	return items, nil
}

// grantCredits is an atomic in-database increment, never read-modify-write.
func grantCredits(tx *gorm.DB, userID uuid.UUID, amount int) error {
	result := tx.Model(&models.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to grant credits: %w", result.Error)
	}
	return nil
}

// sanitizeFilename strips anything that could escape the storage key path.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
