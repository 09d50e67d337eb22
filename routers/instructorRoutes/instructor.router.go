package instructorRoutes

import (
	controllers "lms_backend/controllers/instructor"
	"lms_backend/middleware"
	validators "lms_backend/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up admin instructor management and the
// public instructor listing
func SetupInstructorRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/instructor")

	adminGroup.Post("/", middleware.JWTMiddleware, validators.CreateInstructor(), controllers.AdminCreateInstructor)
	adminGroup.Get("/list", middleware.JWTMiddleware, controllers.AdminGetAllInstructors)
	adminGroup.Get("/:id", middleware.JWTMiddleware, validators.InstructorID(), controllers.AdminGetInstructor)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.InstructorID(), validators.UpdateInstructor(), controllers.AdminUpdateInstructor)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.InstructorID(), controllers.AdminDeleteInstructor)

	app.Get("/instructors", controllers.GetActiveInstructors)
}
