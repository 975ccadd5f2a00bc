package authRoutes

import (
	authController "tka-lms/controllers/auth"
	"tka-lms/middleware"
	authValidator "tka-lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up all authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
	authGroup.Post("/refresh", middleware.JWTMiddleware, authController.RefreshToken)
}
