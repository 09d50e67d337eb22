package instructorValidator

import (
	"regexp"
	"strconv"
	"strings"

	"lms_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// InstructorForm is the instructor enrollment payload. Social links with
// empty values are pruned before persisting.
type InstructorForm struct {
	Name            string            `json:"name"`
	Tagline         string            `json:"tagline"`
	Background      string            `json:"background"`
	Bio             string            `json:"bio"`
	Email           string            `json:"email"`
	ProfileImageURL string            `json:"profile_image_url"`
	SocialLinks     map[string]string `json:"social_links"`
	IsActive        *bool             `json:"is_active"`
}

// PruneSocialLinks removes entries whose value is empty or whitespace
func (f *InstructorForm) PruneSocialLinks() {
	for key, value := range f.SocialLinks {
		if strings.TrimSpace(value) == "" {
			delete(f.SocialLinks, key)
		}
	}
}

// CreateInstructor validates the instructor enrollment request
func CreateInstructor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(InstructorForm)

		if err := c.BodyParser(form); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		form.Name = strings.TrimSpace(form.Name)
		form.Email = strings.TrimSpace(strings.ToLower(form.Email))

		if form.Name == "" {
			errors["name"] = "Name is required!"
		} else if len(form.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if form.Email == "" {
			errors["email"] = "Email is required!"
		} else if !emailRegex.MatchString(form.Email) {
			errors["email"] = "Invalid email address!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		form.PruneSocialLinks()

		c.Locals("validatedInstructor", form)
		return c.Next()
	}
}

// UpdateInstructor validates the instructor update request; all fields optional
func UpdateInstructor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(InstructorForm)

		if err := c.BodyParser(form); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		form.Name = strings.TrimSpace(form.Name)
		form.Email = strings.TrimSpace(strings.ToLower(form.Email))

		if form.Name != "" && len(form.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if form.Email != "" && !emailRegex.MatchString(form.Email) {
			errors["email"] = "Invalid email address!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		form.PruneSocialLinks()

		c.Locals("validatedInstructorUpdate", form)
		return c.Next()
	}
}

// InstructorID validates the :id path parameter
func InstructorID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Instructor ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Instructor ID!", nil)
		}

		c.Locals("instructorID", id)
		return c.Next()
	}
}
