package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/roadwatch/pothole-backend/internal/dto"
	"github.com/roadwatch/pothole-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.PotholeReport{},
		&models.MunicipalVerification{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		UserID:       uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsStaff:      staff,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func userCredits(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()

	var user models.User
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	return user.Credits
}

func reportStatus(t *testing.T, db *gorm.DB, reportID uuid.UUID) models.ReportStatus {
	t.Helper()

	var report models.PotholeReport
	if err := db.Where("report_id = ?", reportID).First(&report).Error; err != nil {
		t.Fatalf("load report: %v", err)
	}
	return report.Status
}

func registerRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	}
}
