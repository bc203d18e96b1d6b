package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-key-for-unit-tests-only",
		JWTExpiry: time.Hour,
		Port:      "0",
		Env:       "test",
	}
}

// setupTestServer wires a server around an in-memory database and returns a
// Fiber app with the full route table registered.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Experience{},
		&models.Education{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	))

	s := NewServerWithDeps(testConfig(), db, nil)
	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, dest), "body: %s", b)
}

// registerUser signs up a user through the API and returns the issued token.
func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret1",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func authedRequest(method, target, token string, body any) *http.Request {
	req := jsonRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
