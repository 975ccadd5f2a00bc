package controllers

import (
	"encoding/json"
	"log"
	"strconv"
	"tka-lms/database"
	"tka-lms/middleware"
	courseModels "tka-lms/models/course"
	"tka-lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// LessonRequest is the body of POST /lessons
type LessonRequest struct {
	ModuleID   string `json:"module_id"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index"`
}

// QuizQuestionsRequest is the body of POST /lessons/:id/quizzes
type QuizQuestionsRequest struct {
	Questions []courseModels.Question `json:"questions"`
}

// GetLesson returns a lesson with its quiz questions (answer key stripped),
// the caller's progress, and prev/next navigation within the module
func GetLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	publicQuestions, err := publicQuestionsForLesson(lesson.ID)
	if err != nil {
		log.Printf("[LESSON] Failed to load questions for lesson %d: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	// Caller's progress on this lesson, if any
	var userProgress *courseModels.UserProgress
	var progress courseModels.UserProgress
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&progress).Error; err == nil {
		userProgress = &progress
	}

	// Module and course context
	var module courseModels.Module
	moduleFound := database.Database.Db.Where("id = ? AND is_deleted = ?", lesson.ModuleID, false).First(&module).Error == nil

	var moduleInfo, courseInfo interface{}
	if moduleFound {
		moduleInfo = fiber.Map{"id": module.ID, "title": module.Title}

		var course courseModels.Course
		if database.Database.Db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error == nil {
			courseInfo = fiber.Map{"id": course.ID, "title": course.Title}
		}
	}

	// Prev/next lesson within the module, ordered by order_index
	var prevLesson, nextLesson interface{}
	if moduleFound {
		var moduleLessons []courseModels.Lesson
		database.Database.Db.Where("module_id = ? AND is_deleted = ?", lesson.ModuleID, false).
			Order("order_index asc").Find(&moduleLessons)

		for i, l := range moduleLessons {
			if l.ID != lesson.ID {
				continue
			}
			if i > 0 {
				prevLesson = fiber.Map{"id": moduleLessons[i-1].ID, "title": moduleLessons[i-1].Title}
			}
			if i < len(moduleLessons)-1 {
				nextLesson = fiber.Map{"id": moduleLessons[i+1].ID, "title": moduleLessons[i+1].Title}
			}
			break
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson": fiber.Map{
			"id":          lesson.ID,
			"title":       lesson.Title,
			"video_url":   lesson.VideoURL,
			"content":     lesson.Content,
			"order_index": lesson.OrderIndex,
			"module":      moduleInfo,
			"course":      courseInfo,
		},
		"quizzes":      publicQuestions,
		"userProgress": userProgress,
		"navigation": fiber.Map{
			"prevLesson": prevLesson,
			"nextLesson": nextLesson,
		},
	})
}

// CreateLesson creates a new lesson inside a module (instructor/admin only)
func CreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	moduleID, err := strconv.ParseUint(reqData.ModuleID, 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	title := reqData.Title
	if title == "" && reqData.VideoURL != "" {
		// Backfill the title from the video's oEmbed metadata
		if fetched, err := utils.FetchVideoTitle(reqData.VideoURL); err == nil && fetched != "" {
			title = fetched
		}
	}

	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		orderIndex = 1
	}

	lesson := courseModels.Lesson{
		ModuleID:   module.ID,
		Title:      title,
		VideoURL:   reqData.VideoURL,
		Content:    reqData.Content,
		OrderIndex: orderIndex,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("[LESSON] Failed to create lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", fiber.Map{
		"lesson": lesson,
	})
}

// AddLessonQuiz creates or replaces the question set for a lesson
// (instructor/admin only)
func AddLessonQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuestions").(*QuizQuestionsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	lessonID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	encoded, err := json.Marshal(reqData.Questions)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questions payload!", nil)
	}

	// One question set per lesson: replace if one already exists
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&quiz).Error; err == nil {
		quiz.Questions = datatypes.JSON(encoded)
		if err := database.Database.Db.Save(&quiz).Error; err != nil {
			log.Printf("[LESSON] Failed to update quiz for lesson %d: %v", lesson.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add quiz questions!", nil)
		}
	} else {
		quiz = courseModels.Quiz{
			LessonID:  lesson.ID,
			Questions: datatypes.JSON(encoded),
		}
		if err := database.Database.Db.Create(&quiz).Error; err != nil {
			log.Printf("[LESSON] Failed to create quiz for lesson %d: %v", lesson.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add quiz questions!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz questions added successfully!", fiber.Map{
		"quiz_id":        quiz.ID,
		"totalQuestions": len(reqData.Questions),
	})
}
