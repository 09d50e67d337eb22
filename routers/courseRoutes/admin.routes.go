package courseRoutes

import (
	controllers "lms_backend/controllers/course"
	"lms_backend/middleware"
	validators "lms_backend/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Authoring: save draft, edit draft, publish
	adminGroup.Post("/draft", middleware.JWTMiddleware, validators.CourseDraft(), controllers.AdminSaveCourseDraft)
	adminGroup.Put("/:id/draft", middleware.JWTMiddleware, validators.CourseID(), validators.CourseDraft(), controllers.AdminUpdateCourseDraft)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.CourseID(), validators.CourseDraft(), controllers.AdminPublishCourse)

	// Catalog management
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.AdminList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminGetCourseDetails)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminDeleteCourse)

	// Enrollment reporting
	adminGroup.Get("/:id/enrollments", middleware.JWTMiddleware, validators.CourseID(), validators.EnrollmentQuery(), controllers.AdminGetCourseEnrollments)
	adminGroup.Get("/:id/completed", middleware.JWTMiddleware, validators.CourseID(), controllers.AdminGetCompletedStudents)

	// Asset uploads (thumbnails, lesson videos, certificate templates,
	// instructor images)
	app.Post("/admin/upload", middleware.JWTMiddleware, validators.UploadAsset(), controllers.AdminUploadAsset)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, controllers.AdminDashboardStats)
}
