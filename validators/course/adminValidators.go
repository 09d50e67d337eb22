package courseValidator

import (
	"lms_backend/middleware"
	"lms_backend/utils"
	"lms_backend/workflow"

	"github.com/gofiber/fiber/v2"
)

// CourseDraft validates the nested authoring form and stores it for the
// save/publish controllers. Structural rules (required titles, price >= 0,
// lesson duration >= 1, two answer options per question) live on the form
// struct's validation tags.
func CourseDraft() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(workflow.CourseForm)

		if err := c.BodyParser(form); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := form.Validate(); err != nil {
			return middleware.ValidationErrorResponse(c, workflow.FieldErrors(err))
		}

		c.Locals("validatedCourseForm", form)
		return c.Next()
	}
}

// AdminList validates the admin course listing query
func AdminList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Status string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Status != "" && reqData.Status != "draft" && reqData.Status != "published" && reqData.Status != "archived" {
			errors["status"] = "Status must be draft, published or archived!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdminList", reqData)
		return c.Next()
	}
}

// EnrollmentQuery validates the admin enrollment listing query
func EnrollmentQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Status string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Status != "" && reqData.Status != "ENROLLED" && reqData.Status != "COMPLETED" {
			errors["status"] = "Status must be ENROLLED or COMPLETED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentQuery", reqData)
		return c.Next()
	}
}

// UploadAsset validates the multipart upload request: a file field plus an
// asset class. Size and MIME checks run before any byte reaches disk.
func UploadAsset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		class := c.FormValue("asset_class")
		if class == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "asset_class is required!", nil)
		}

		file, err := c.FormFile("file")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
		}

		if err := utils.ValidateUpload(class, file.Size, file.Header.Get("Content-Type")); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}

		c.Locals("uploadClass", class)
		c.Locals("uploadFile", file)
		return c.Next()
	}
}
