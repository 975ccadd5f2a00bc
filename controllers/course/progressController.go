package controllers

import (
	"strconv"
	"tka-lms/database"
	"tka-lms/middleware"
	courseModels "tka-lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetUserProgress returns all progress rows for a user, enriched with
// lesson/module/course context and overall statistics. Users can only view
// their own progress unless they are admins.
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetID := userID
	if idParam := c.Params("id"); idParam != "" {
		parsed, err := strconv.ParseUint(idParam, 10, 32)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}
		targetID = uint(parsed)
	}

	role, _ := c.Locals("userRole").(string)
	if targetID != userID && role != "admin" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own progress!", nil)
	}

	db := database.Database.Db

	var progressRows []courseModels.UserProgress
	db.Where("user_id = ?", targetID).Find(&progressRows)

	type EnrichedProgress struct {
		courseModels.UserProgress
		Lesson interface{} `json:"lesson"`
		Module interface{} `json:"module"`
		Course interface{} `json:"course"`
	}

	enriched := make([]EnrichedProgress, len(progressRows))
	totalScore := 0
	completedLessons := 0
	for i, row := range progressRows {
		entry := EnrichedProgress{UserProgress: row}

		var lesson courseModels.Lesson
		if db.Where("id = ?", row.LessonID).First(&lesson).Error == nil {
			entry.Lesson = fiber.Map{"id": lesson.ID, "title": lesson.Title}

			var module courseModels.Module
			if db.Where("id = ?", lesson.ModuleID).First(&module).Error == nil {
				entry.Module = fiber.Map{"id": module.ID, "title": module.Title}

				var course courseModels.Course
				if db.Where("id = ?", module.CourseID).First(&course).Error == nil {
					entry.Course = fiber.Map{"id": course.ID, "title": course.Title}
				}
			}
		}

		enriched[i] = entry
		totalScore += row.Score
		if row.Completed {
			completedLessons++
		}
	}

	var totalLessons int64
	db.Model(&courseModels.Lesson{}).Where("is_deleted = ?", false).Count(&totalLessons)

	completionPercentage := 0
	if totalLessons > 0 {
		completionPercentage = int(float64(completedLessons) / float64(totalLessons) * 100)
	}
	averageScore := 0
	if len(progressRows) > 0 {
		averageScore = totalScore / len(progressRows)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress": enriched,
		"statistics": fiber.Map{
			"totalLessons":         totalLessons,
			"completedLessons":     completedLessons,
			"completionPercentage": completionPercentage,
			"averageScore":         averageScore,
			"inProgressCount":      len(progressRows) - completedLessons,
		},
	})
}

// GetCourseProgress returns the caller's module-wise progress for one course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.ParseUint(c.Params("courseId"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules)

	var progressRows []courseModels.UserProgress
	db.Where("user_id = ?", userID).Find(&progressRows)

	progressMap := make(map[uint]courseModels.UserProgress, len(progressRows))
	for _, row := range progressRows {
		progressMap[row.LessonID] = row
	}

	type LessonProgress struct {
		ID       uint        `json:"id"`
		Title    string      `json:"title"`
		Progress interface{} `json:"progress"`
	}
	type ModuleProgress struct {
		ID               uint             `json:"id"`
		Title            string           `json:"title"`
		OrderIndex       int              `json:"order_index"`
		Lessons          []LessonProgress `json:"lessons"`
		CompletedLessons int              `json:"completedLessons"`
		TotalLessons     int              `json:"totalLessons"`
		IsCompleted      bool             `json:"isCompleted"`
	}

	totalLessons := 0
	completedLessons := 0
	moduleProgress := make([]ModuleProgress, len(modules))
	for i, module := range modules {
		var lessons []courseModels.Lesson
		db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Order("order_index asc").Find(&lessons)

		lessonEntries := make([]LessonProgress, len(lessons))
		completedCount := 0
		for j, lesson := range lessons {
			entry := LessonProgress{ID: lesson.ID, Title: lesson.Title}
			if row, ok := progressMap[lesson.ID]; ok {
				entry.Progress = fiber.Map{
					"score":        row.Score,
					"completed":    row.Completed,
					"completed_at": row.CompletedAt,
				}
				if row.Completed {
					completedCount++
				}
			} else {
				entry.Progress = fiber.Map{"score": 0, "completed": false}
			}
			lessonEntries[j] = entry
		}

		moduleProgress[i] = ModuleProgress{
			ID:               module.ID,
			Title:            module.Title,
			OrderIndex:       module.OrderIndex,
			Lessons:          lessonEntries,
			CompletedLessons: completedCount,
			TotalLessons:     len(lessons),
			IsCompleted:      len(lessons) > 0 && completedCount == len(lessons),
		}

		totalLessons += len(lessons)
		completedLessons += completedCount
	}

	completionPercentage := 0
	if totalLessons > 0 {
		completionPercentage = int(float64(completedLessons) / float64(totalLessons) * 100)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
		},
		"moduleProgress": moduleProgress,
		"statistics": fiber.Map{
			"totalModules":         len(modules),
			"totalLessons":         totalLessons,
			"completedLessons":     completedLessons,
			"completionPercentage": completionPercentage,
		},
	})
}
