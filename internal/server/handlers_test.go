package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lifeline/internal/config"
	"lifeline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ContactRequest{},
		&models.Rating{},
	))

	cfg := &config.Config{
		JWTSecret: "test-secret-test-secret-test-secret",
		Port:      "0",
		Env:       "test",
		MailFrom:  "Lifeline <test@lifeline.local>",
		// No MAIL_API_KEY: the mail client stays disabled in handler tests.
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// authToken mints a provider-style token carrying the verified email claim.
func authToken(t *testing.T, s *Server, email, name string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if email != "" {
		claims["email"] = email
	}
	if name != "" {
		claims["name"] = name
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.JWTSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func createUser(t *testing.T, db *gorm.DB, email, name, bloodGroup, area, city string, isDonor bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:      email,
		Name:       name,
		BloodGroup: bloodGroup,
		Area:       area,
		City:       city,
		IsDonor:    isDonor,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
