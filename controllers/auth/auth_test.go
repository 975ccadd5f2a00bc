package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tka-lms/config"
	"tka-lms/database"
	"tka-lms/middleware"
	"tka-lms/models"
	"tka-lms/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestSignup(t *testing.T) {
	app := setupApp(t)

	resp, envelope := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Dewi",
		"email":    "dewi@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, envelope.Status)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "dewi@example.com", data.User.Email)
	assert.Equal(t, "student", data.User.Role)

	// Password hash must never appear in the payload
	assert.NotContains(t, string(envelope.Data), "password")

	var stored models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "dewi@example.com").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	body := fiber.Map{"name": "Dewi", "email": "dewi@example.com", "password": "secret123"}
	postJSON(t, app, "/auth/register", body)
	resp, envelope := postJSON(t, app, "/auth/register", body)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, envelope.Status)
}

func TestSignupValidation(t *testing.T) {
	app := setupApp(t)

	resp, envelope := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Dewi",
		"email":    "not-an-email",
		"password": "123",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, envelope.Status)
}

func TestSignupRoleAllowlist(t *testing.T) {
	app := setupApp(t)

	_, envelope := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "secret123",
		"role":     "admin",
	})

	var data struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, "student", data.User.Role, "self-registration must not grant admin")
}

func TestLogin(t *testing.T) {
	app := setupApp(t)
	postJSON(t, app, "/auth/register", fiber.Map{"name": "Dewi", "email": "dewi@example.com", "password": "secret123"})

	resp, envelope := postJSON(t, app, "/auth/login", fiber.Map{"email": "dewi@example.com", "password": "secret123"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.NotEmpty(t, data.Token)

	var tracking []models.LoginTracking
	require.NoError(t, database.Database.Db.Find(&tracking).Error)
	assert.Len(t, tracking, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)
	postJSON(t, app, "/auth/register", fiber.Map{"name": "Dewi", "email": "dewi@example.com", "password": "secret123"})

	resp, envelope := postJSON(t, app, "/auth/login", fiber.Map{"email": "dewi@example.com", "password": "wrong-pass"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, envelope.Status)
}

func TestLoginBlocksAfterRepeatedFailures(t *testing.T) {
	app := setupApp(t)
	postJSON(t, app, "/auth/register", fiber.Map{"name": "Dewi", "email": "dewi@example.com", "password": "secret123"})

	for i := 0; i < 3; i++ {
		postJSON(t, app, "/auth/login", fiber.Map{"email": "dewi@example.com", "password": "wrong-pass"})
	}

	// Even the correct password is rejected while blocked
	resp, envelope := postJSON(t, app, "/auth/login", fiber.Map{"email": "dewi@example.com", "password": "secret123"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Your account is temporarily blocked. Try again later.", envelope.Message)
}

func TestMe(t *testing.T) {
	app := setupApp(t)

	user := models.User{Name: "Dewi", Email: "dewi@example.com", Password: "hashed", Role: "student"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	var data struct {
		User struct {
			ID    uint   `json:"ID"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, user.ID, data.User.ID)
	assert.Equal(t, "dewi@example.com", data.User.Email)
}

func TestRefreshToken(t *testing.T) {
	app := setupApp(t)

	user := models.User{Name: "Dewi", Email: "dewi@example.com", Password: "hashed", Role: "student"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.NotEmpty(t, data.Token)
}
