package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulkMessage(t *testing.T) {
	s, app, db := setupTestServer(t)
	donorA := createUser(t, db, "a@example.com", "Ayesha Khan", "A+", "Dhanmondi", "Dhaka", true)
	donorB := createUser(t, db, "b@example.com", "Babul Mia", "A+", "Uttara", "Dhaka", true)
	createUser(t, db, "sender@example.com", "Rahim Uddin", "O+", "Mirpur", "Dhaka", true)

	token := authToken(t, s, "sender@example.com", "Rahim Uddin")
	resp := doJSON(t, app, http.MethodPost, "/api/bulk-message", token, map[string]any{
		"donorIds":   []uint{donorA.ID, donorB.ID, 999},
		"message":    "A+ blood needed at Dhaka Medical College",
		"bloodGroup": "A+",
		"hospital":   "Dhaka Medical College",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	// Unknown donor IDs are skipped, not fatal.
	assert.Equal(t, float64(2), body["donorCount"])
}

func TestBulkMessageValidation(t *testing.T) {
	s, app, db := setupTestServer(t)
	donor := createUser(t, db, "a@example.com", "Ayesha Khan", "A+", "Dhanmondi", "Dhaka", true)
	createUser(t, db, "sender@example.com", "Rahim Uddin", "O+", "Mirpur", "Dhaka", true)

	token := authToken(t, s, "sender@example.com", "Rahim Uddin")

	t.Run("no donors selected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/bulk-message", token, map[string]any{
			"donorIds": []uint{},
			"message":  "urgent",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty message", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/bulk-message", token, map[string]any{
			"donorIds": []uint{donor.ID},
			"message":  "",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid blood group", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/bulk-message", token, map[string]any{
			"donorIds":   []uint{donor.ID},
			"message":    "urgent",
			"bloodGroup": "H+",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("all donors unknown", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/bulk-message", token, map[string]any{
			"donorIds": []uint{998, 999},
			"message":  "urgent",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestBulkMessageRequiresAuth(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/bulk-message", "", map[string]any{
		"donorIds": []uint{1},
		"message":  "urgent",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
