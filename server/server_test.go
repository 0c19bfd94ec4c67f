package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"devconnect/auth"
	"devconnect/config"
	"devconnect/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A second connection to :memory: would see an empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// setupTestApp wires a fresh app and server around an in-memory database.
func setupTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	cfg := &config.Config{JWTSecret: testSecret}
	srv := NewServerWithDeps(cfg, setupTestDB(t), nil)

	app := fiber.New()
	srv.SetupRoutes(app)

	return app, srv
}

// jsonRequest performs a JSON request against the app, optionally with a
// bearer token, and decodes the response body into a generic map.
func jsonRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// jsonRequestList is jsonRequest for endpoints returning a JSON array.
func jsonRequestList(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, []any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded []any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// registerUser registers a user and returns the bearer token and user ID.
func registerUser(t *testing.T, app *fiber.App, name, email, password string) (string, uint) {
	t.Helper()

	status, body := jsonRequest(t, app, "POST", "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, fiber.StatusOK, status)

	token, ok := body["token"].(string)
	require.True(t, ok, "registration response must contain a token")

	userID, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)

	return token, userID
}
