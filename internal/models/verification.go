package models

import (
	"time"

	"github.com/google/uuid"
)

// MunicipalVerification is one staff review event. Rows are append-only:
// a report accumulates one row per decision, there is no uniqueness
// constraint on report_id.
type MunicipalVerification struct {
	ID                  uint                 `gorm:"primaryKey;autoIncrement" json:"-"`
	ReportID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"report_id"`
	VerifiedBy          string               `gorm:"size:100" json:"verified_by"`
	Decision            VerificationDecision `gorm:"size:20" json:"decision"`
	Notes               string               `gorm:"type:text" json:"notes"`
	EstimatedRepairDate *time.Time           `json:"estimated_repair_date"`
	VerifiedAt          time.Time            `gorm:"autoCreateTime" json:"verified_at"`
}
