package quizRoutes

import (
	controllers "tka-lms/controllers/course"
	"tka-lms/middleware"
	validators "tka-lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz submission and preview routes
func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quiz")

	quizGroup.Post("/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)
	quizGroup.Get("/lesson/:lessonId", controllers.GetLessonQuiz)
}
