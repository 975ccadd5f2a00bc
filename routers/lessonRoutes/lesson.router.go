package lessonRoutes

import (
	controllers "tka-lms/controllers/course"
	"tka-lms/middleware"
	validators "tka-lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupLessonRoutes sets up all lesson routes
func SetupLessonRoutes(app *fiber.App) {
	lessonGroup := app.Group("/lessons")

	lessonGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetLesson)
	lessonGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRoles("admin", "instructor"), validators.CreateLesson(), controllers.CreateLesson)
	lessonGroup.Post("/:id/quizzes", middleware.JWTMiddleware, middleware.RequireRoles("admin", "instructor"), validators.AddLessonQuiz(), controllers.AddLessonQuiz)
}
