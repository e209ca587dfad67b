package dto

import "github.com/google/uuid"

// SubmitReportInput carries the parsed multipart form of a submission.
type SubmitReportInput struct {
	ImageName    string
	ImageBytes   []byte
	Description  string
	LocationName string
	Latitude     *float64
	Longitude    *float64
	Severity     string
	// BaseURL is the externally visible scheme://host of this service,
	// used to build the local /image/<key> URL stored on the report.
	BaseURL string
}

type SubmitReportResponse struct {
	Message  string    `json:"message"`
	ReportID uuid.UUID `json:"report_id"`
}

type VerifyReportRequest struct {
	ReportID            uuid.UUID `json:"report_id"`
	Action              string    `json:"action"`
	VerifiedBy          string    `json:"verified_by,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	EstimatedRepairDate string    `json:"estimated_repair_date,omitempty"`
}

type UpdateProgressRequest struct {
	ReportID uuid.UUID `json:"report_id"`
	Status   string    `json:"status"`
}

// ReportSummary is the owner-facing listing shape.
type ReportSummary struct {
	ReportID       uuid.UUID `json:"report_id"`
	Description    string    `json:"description"`
	LocationName   string    `json:"location_name"`
	Severity       string    `json:"severity"`
	Status         string    `json:"status"`
	CreditsAwarded int       `json:"credits_awarded"`
	CreatedAt      string    `json:"created_at"`
	ImageURL       string    `json:"image_url"`
}

// StaffReportItem is the staff-facing listing shape: adds the owner
// username and coordinates.
type StaffReportItem struct {
	ReportID     uuid.UUID `json:"report_id"`
	Username     string    `json:"username"`
	Description  string    `json:"description"`
	LocationName string    `json:"location_name"`
	Severity     string    `json:"severity"`
	Status       string    `json:"status"`
	CreatedAt    string    `json:"created_at"`
	ImageURL     string    `json:"image_url"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
}

// PublicReportItem is the unauthenticated listing shape: no username, no
// image URL, date only.
type PublicReportItem struct {
	ReportID     uuid.UUID `json:"report_id"`
	Description  string    `json:"description"`
	LocationName string    `json:"location_name"`
	Severity     string    `json:"severity"`
	Status       string    `json:"status"`
	CreatedAt    string    `json:"created_at"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
}
