package controllers

import (
	"log"
	"strconv"
	"time"
	"tka-lms/database"
	"tka-lms/middleware"
	"tka-lms/models"
	courseModels "tka-lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// QuizSubmissionRequest is the body of POST /quiz/submit. The validator
// parses and stashes it in Locals before the controller runs.
type QuizSubmissionRequest struct {
	LessonID string            `json:"lesson_id"`
	Answers  []SubmittedAnswer `json:"answers"`
}

// PublicQuestion is a question as exposed to clients: the answer key field
// is absent from the type, not nulled, so it cannot leak through the payload.
type PublicQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// SubmitQuiz scores a quiz submission and reconciles the user's progress
// record for the lesson
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSubmission").(*QuizSubmissionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lessonID, err := strconv.ParseUint(reqData.LessonID, 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
	}

	// Verify lesson exists
	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// Load the question set for this lesson
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No quiz questions found for this lesson!", nil)
	}

	questions, err := courseModels.ParseQuestions(quiz.Questions)
	if err != nil {
		log.Printf("[QUIZ] Failed to decode questions for quiz %d: %v", quiz.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No quiz questions found for this lesson!", nil)
	}

	result := ScoreSubmission(quiz.ID, questions, reqData.Answers)

	// Reconcile the progress record. The composite unique index on
	// (user_id, lesson_id) plus ON CONFLICT keeps this a single atomic
	// write, so concurrent submissions cannot create duplicate rows.
	now := time.Now()
	var completedAt *time.Time
	if result.Passed {
		completedAt = &now
	}

	progress := courseModels.UserProgress{
		UserID:      userID,
		LessonID:    lesson.ID,
		Score:       result.Score,
		Completed:   result.Passed,
		CompletedAt: completedAt,
	}

	err = database.Database.Db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":        result.Score,
			"completed":    result.Passed,
			"completed_at": completedAt,
			"updated_at":   now,
		}),
	}).Create(&progress).Error
	if err != nil {
		log.Printf("[QUIZ] Failed to save progress for user %d lesson %d: %v", userID, lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	message := "Keep trying! You need 70% to pass."
	if result.Passed {
		message = "Congratulations! You passed the quiz!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"score":          result.Score,
		"totalQuestions": result.TotalQuestions,
		"correctAnswers": result.CorrectAnswers,
		"passed":         result.Passed,
		"results":        result.Results,
		"attempt_ref":    uuid.NewString(),
	})
}

// GetLessonQuiz returns the quiz questions for a lesson without answers
func GetLessonQuiz(c *fiber.Ctx) error {
	lessonID, err := strconv.ParseUint(c.Params("lessonId"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	publicQuestions, err := publicQuestionsForLesson(lesson.ID)
	if err != nil {
		log.Printf("[QUIZ] Failed to load questions for lesson %d: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz questions fetched successfully!", fiber.Map{
		"lesson": fiber.Map{
			"id":    lesson.ID,
			"title": lesson.Title,
		},
		"quizzes":        publicQuestions,
		"totalQuestions": len(publicQuestions),
	})
}

// publicQuestionsForLesson loads a lesson's question set stripped of the
// answer key. Lessons without a quiz yield an empty list, not an error.
func publicQuestionsForLesson(lessonID uint) ([]PublicQuestion, error) {
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&quiz).Error; err != nil {
		return []PublicQuestion{}, nil
	}

	questions, err := courseModels.ParseQuestions(quiz.Questions)
	if err != nil {
		return nil, err
	}

	publicQuestions := make([]PublicQuestion, len(questions))
	for i, q := range questions {
		publicQuestions[i] = PublicQuestion{
			ID:       courseModels.QuestionID(quiz.ID, i),
			Question: q.Question,
			Options:  q.Options,
		}
	}
	return publicQuestions, nil
}
