package courseValidator

import (
	"strconv"
	"strings"
	controllers "tka-lms/controllers/course"
	"tka-lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.LessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ModuleID) == "" {
			errors["module_id"] = "Module ID is required!"
		}

		if strings.TrimSpace(reqData.Title) == "" && strings.TrimSpace(reqData.VideoURL) == "" {
			errors["title"] = "Title or video URL is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func AddLessonQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.QuizQuestionsRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Questions) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Questions array is required!", nil)
		}

		errors := make(map[string]string)
		for i, q := range reqData.Questions {
			if strings.TrimSpace(q.Question) == "" {
				errors["questions"] = "Every question needs a prompt!"
				break
			}
			if len(q.Options) < 2 {
				errors["questions"] = "Every question needs at least two options!"
				break
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				errors["questions"] = "correctIndex out of range for question " + strconv.Itoa(i+1) + "!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestions", reqData)
		return c.Next()
	}
}
