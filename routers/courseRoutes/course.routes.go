package courseRoutes

import (
	controllers "lms_backend/controllers/course"
	"lms_backend/middleware"
	validators "lms_backend/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and student routes
func SetupCourseRoutes(app *fiber.App) {
	// Public catalog: published courses only
	courseGroup := app.Group("/courses")
	courseGroup.Get("/", validators.CourseList(), controllers.GetPublishedCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetPublishedCourseDetails)
	courseGroup.Get("/:id/announcements", validators.CourseID(), controllers.GetCourseAnnouncements)

	app.Get("/categories", controllers.GetCourseCategories)

	// Student routes
	studentGroup := app.Group("/course")
	studentGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	studentGroup.Post("/:id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.LessonParams(), controllers.CompleteLesson)

	app.Get("/my/courses", middleware.JWTMiddleware, controllers.GetMyCourses)
}
