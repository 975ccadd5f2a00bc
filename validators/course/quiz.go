package courseValidator

import (
	"strings"
	controllers "tka-lms/controllers/course"
	"tka-lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz validates a quiz submission before any store access happens
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.QuizSubmissionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.LessonID) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers array is required!", nil)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
