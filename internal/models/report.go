package models

import (
	"time"

	"github.com/google/uuid"
)

// PotholeReport is a citizen-submitted pothole observation.
type PotholeReport struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"-"`
	ReportID       uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"report_id"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	ImageURL       string       `gorm:"size:500" json:"image_url"`
	StorageKey     string       `gorm:"size:300" json:"-"`
	Description    string       `gorm:"type:text" json:"description"`
	LocationName   string       `gorm:"size:200" json:"location_name"`
	Latitude       *float64     `json:"latitude"`
	Longitude      *float64     `json:"longitude"`
	Severity       Severity     `gorm:"size:20;not null" json:"severity"`
	Status         ReportStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreditsAwarded int          `gorm:"not null;default:5" json:"credits_awarded"`
	CreatedAt      time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}
