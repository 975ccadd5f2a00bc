package controllers

import (
	"log"
	"strconv"
	"strings"
	"tka-lms/database"
	"tka-lms/middleware"
	courseModels "tka-lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination and an optional
// category filter
func GetAllCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	category := c.Query("category")

	db := database.Database.Db
	query := db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)
	if category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	var totalItems int64
	query.Count(&totalItems)

	var courses []courseModels.Course
	query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&courses)

	// Attach module counts
	type CourseWithModules struct {
		courseModels.Course
		ModuleCount int64 `json:"moduleCount"`
	}

	coursesWithModules := make([]CourseWithModules, len(courses))
	for i, course := range courses {
		var moduleCount int64
		db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&moduleCount)
		coursesWithModules[i] = CourseWithModules{Course: course, ModuleCount: moduleCount}
	}

	totalPages := (totalItems + int64(limit) - 1) / int64(limit)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": coursesWithModules,
		"pagination": fiber.Map{
			"currentPage":  page,
			"totalPages":   totalPages,
			"totalItems":   totalItems,
			"itemsPerPage": limit,
		},
	})
}

// GetCategories returns the distinct course categories
func GetCategories(c *fiber.Ctx) error {
	var categories []string
	err := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true).
		Distinct("category").
		Pluck("category", &categories).Error
	if err != nil {
		log.Printf("[COURSE] Failed to fetch categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}

// GetCourseDetails returns a course with its modules, each module's ordered
// lessons, and the caller's progress rows
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&modules)

	type ModuleWithLessons struct {
		courseModels.Module
		Lessons []courseModels.Lesson `json:"lessons"`
	}

	modulesWithLessons := make([]ModuleWithLessons, len(modules))
	for i, module := range modules {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc").Find(&lessons)
		modulesWithLessons[i] = ModuleWithLessons{Module: module, Lessons: lessons}
	}

	var userProgress []courseModels.UserProgress
	database.Database.Db.Where("user_id = ?", userID).Find(&userProgress)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":       course,
		"modules":      modulesWithLessons,
		"userProgress": userProgress,
	})
}

// CreateCourse creates a new course (instructor/admin only)
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		ThumbnailURL: reqData.Thumbnail,
		InstructorID: userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("[COURSE] Failed to create course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{
		"course": course,
	})
}

// AddModule adds a module to a course (instructor/admin only)
func AddModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	courseID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	orderIndex := reqData.Order
	if orderIndex == 0 {
		orderIndex = 1
	}

	module := courseModels.Module{
		CourseID:   course.ID,
		Title:      reqData.Title,
		OrderIndex: orderIndex,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		log.Printf("[COURSE] Failed to add module to course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module added successfully!", fiber.Map{
		"module": module,
	})
}

// CourseRequest is the body of POST /courses
type CourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Thumbnail   string `json:"thumbnail"`
}

// ModuleRequest is the body of POST /courses/:id/modules
type ModuleRequest struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}
