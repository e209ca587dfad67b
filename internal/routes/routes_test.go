package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/roadwatch/pothole-backend/internal/config"
	"github.com/roadwatch/pothole-backend/internal/handlers"
	"github.com/roadwatch/pothole-backend/internal/models"
	"github.com/roadwatch/pothole-backend/internal/services"
	"github.com/roadwatch/pothole-backend/internal/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Upload(_ context.Context, key string, body []byte) (string, error) {
	m.objects[key] = body
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key, nil
}

func (m *memStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + key, nil
}

func (m *memStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
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

	cfg := &config.Config{SessionTTL: time.Hour}
	sessions := session.NewMemoryStore()
	store := &memStorage{objects: make(map[string][]byte)}

	authService := services.NewAuthService(db)
	reportService := services.NewReportService(db, store)
	verificationService := services.NewVerificationService(db)

	app := fiber.New()
	Setup(app, db, sessions,
		handlers.NewAuthHandler(authService, sessions, cfg),
		handlers.NewReportHandler(reportService),
		handlers.NewStaffHandler(reportService, verificationService),
		handlers.NewImageHandler(store),
		handlers.NewHealthHandler(),
	)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/register", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/login", fiber.Map{
		"username": username,
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	return sessionCookie(t, resp)
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func TestAPIUnauthorizedIsJSON(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/my-reports", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q, want JSON", ct)
	}
}

func TestPageUnauthorizedRedirectsToLogin(t *testing.T) {
	app, _ := newTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()
	req := httptest.NewRequest("POST", "/report-pothole", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("report-pothole: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q, want /login", loc)
	}
}

func TestStaffRouteRejectsCitizen(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice")

	resp := doJSON(t, app, "GET", "/api/pending-reports", nil, cookie)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestSubmitAndListReports(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "pothole.jpg")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
		t.Fatalf("write image: %v", err)
	}
	writer.WriteField("description", "deep pothole near the crosswalk")
	writer.WriteField("location_name", "5th Ave & Main St")
	writer.WriteField("latitude", "40.7128")
	writer.WriteField("longitude", "-74.0060")
	writer.WriteField("severity", "HIGH")
	writer.Close()

	req := httptest.NewRequest("POST", "/report-pothole", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("submit status = %d, body %s", resp.StatusCode, raw)
	}

	resp = doJSON(t, app, "GET", "/api/my-reports", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("my-reports status = %d", resp.StatusCode)
	}
	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode my-reports: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 report, got %d", len(items))
	}
	if items[0]["status"] != "PENDING" {
		t.Fatalf("new report status = %v, want PENDING", items[0]["status"])
	}
}

func TestMunicipalLoginGatesStaffRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/create-staff-user", fiber.Map{
		"username": "inspector",
		"email":    "inspector@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create staff: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/municipal-login", fiber.Map{
		"username": "inspector",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("municipal login: status %d", resp.StatusCode)
	}
	cookie := sessionCookie(t, resp)

	resp = doJSON(t, app, "GET", "/api/pending-reports", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pending-reports status = %d, want 200", resp.StatusCode)
	}
}

func TestMunicipalLoginRejectsCitizen(t *testing.T) {
	app, _ := newTestApp(t)
	registerAndLogin(t, app, "alice")

	resp := doJSON(t, app, "POST", "/municipal-login", fiber.Map{
		"username": "alice",
		"password": "secret123",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestPublicReportsOpen(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/public-reports", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice")

	req := httptest.NewRequest("GET", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout status = %d, want 302", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/my-reports", nil, cookie)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("stale cookie accepted after logout: status %d", resp.StatusCode)
	}
}
