package models

import (
	"time"

	"github.com/google/uuid"
)

// User covers both citizens and municipal staff; staff is a flag, not a
// separate table.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `gorm:"size:15" json:"phone_number,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Credits      int       `gorm:"not null;default:0" json:"credits"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`

	Reports []PotholeReport `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}
