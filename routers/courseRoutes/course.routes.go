package courseRoutes

import (
	controllers "tka-lms/controllers/course"
	"tka-lms/middleware"
	validators "tka-lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course catalog routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalog browsing
	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/categories", controllers.GetCategories)
	courseGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetCourseDetails)

	// Authoring (instructor/admin)
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRoles("admin", "instructor"), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/:id/modules", middleware.JWTMiddleware, middleware.RequireRoles("admin", "instructor"), validators.AddModule(), controllers.AddModule)
}
