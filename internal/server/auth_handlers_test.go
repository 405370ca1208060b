package server

import (
	"net/http"
	"testing"

	"lifeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegistration() map[string]any {
	return map[string]any{
		"email":      "rahim@example.com",
		"password":   "secret99",
		"name":       "Rahim Uddin",
		"phone":      "01711111111",
		"bloodGroup": "O+",
		"area":       "Dhanmondi",
		"city":       "Dhaka",
	}
}

func TestRegister(t *testing.T) {
	_, app, db := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", validRegistration())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Registration successful", body["message"])
	assert.NotZero(t, body["userId"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "rahim@example.com").First(&user).Error)
	assert.True(t, user.IsDonor)
	assert.Equal(t, "O+", user.BloodGroup)
	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "secret99", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret99")))
}

func TestRegisterValidation(t *testing.T) {
	_, app, _ := setupTestServer(t)

	tests := []struct {
		name string
		mut  func(m map[string]any)
	}{
		{"invalid email", func(m map[string]any) { m["email"] = "not-an-email" }},
		{"short password", func(m map[string]any) { m["password"] = "abc" }},
		{"short name", func(m map[string]any) { m["name"] = "R" }},
		{"invalid blood group", func(m map[string]any) { m["bloodGroup"] = "H+" }},
		{"short area", func(m map[string]any) { m["area"] = "D" }},
		{"short city", func(m map[string]any) { m["city"] = "D" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validRegistration()
			tt.mut(payload)
			resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", validRegistration())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", validRegistration())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestRegisterMixedCaseEmailBindsToProviderIdentity(t *testing.T) {
	s, app, db := setupTestServer(t)

	payload := validRegistration()
	payload["email"] = "Rahim@Example.com"
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	var user models.User
	require.NoError(t, db.Where("email = ?", "rahim@example.com").First(&user).Error)

	// Authenticating with the provider's lowercased email must resolve to the
	// registered donor row, not create a second placeholder.
	token := authToken(t, s, "rahim@example.com", "Rahim Uddin")
	resp = doJSON(t, app, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["isDonor"])
	donor := body["donor"].(map[string]any)
	assert.Equal(t, float64(user.ID), donor["id"])

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginGone(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "rahim@example.com",
		"password": "secret99",
	})
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}
