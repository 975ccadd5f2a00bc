package progressRoutes

import (
	controllers "tka-lms/controllers/course"
	"tka-lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up progress tracking routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress")

	progressGroup.Get("/user", middleware.JWTMiddleware, controllers.GetUserProgress)
	progressGroup.Get("/user/:id", middleware.JWTMiddleware, controllers.GetUserProgress)
	progressGroup.Get("/course/:courseId", middleware.JWTMiddleware, controllers.GetCourseProgress)
}
