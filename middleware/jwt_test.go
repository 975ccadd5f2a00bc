package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tka-lms/config"
	"tka-lms/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("userRole"),
		})
	})
	return app
}

func TestJWTRoundtrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := protectedApp()

	token, err := middleware.GenerateJWT(42, "Dewi", "instructor", "dewi@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			UserID uint   `json:"userId"`
			Role   string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, uint(42), envelope.Data.UserID)
	assert.Equal(t, "instructor", envelope.Data.Role)
}

func TestJWTMissingToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := protectedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMalformedToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := protectedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTWrongKeyRejected(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	token, err := middleware.GenerateJWT(42, "Dewi", "student", "dewi@example.com")
	require.NoError(t, err)

	config.AppConfig = &config.Config{JWTKey: "rotated-secret"}
	app := protectedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Post("/admin-only", middleware.JWTMiddleware, middleware.RequireRoles("admin", "instructor"), func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})

	studentToken, err := middleware.GenerateJWT(1, "Student", "student", "s@example.com")
	require.NoError(t, err)
	instructorToken, err := middleware.GenerateJWT(2, "Instructor", "instructor", "i@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+instructorToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
