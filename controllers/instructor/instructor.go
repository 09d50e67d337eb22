package instructorController

import (
	"encoding/json"
	"log"

	"lms_backend/database"
	"lms_backend/middleware"
	"lms_backend/models"
	instructorValidator "lms_backend/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

func requireAdmin(c *fiber.Ctx) (*models.User, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	return &user, nil
}

// AdminCreateInstructor enrolls a new instructor
func AdminCreateInstructor(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	form, ok := c.Locals("validatedInstructor").(*instructorValidator.InstructorForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	instructor := models.Instructor{
		Name:            form.Name,
		Tagline:         form.Tagline,
		Background:      form.Background,
		Bio:             form.Bio,
		Email:           form.Email,
		ProfileImageURL: form.ProfileImageURL,
		IsActive:        true,
	}
	if form.IsActive != nil {
		instructor.IsActive = *form.IsActive
	}

	if len(form.SocialLinks) > 0 {
		links, err := json.Marshal(form.SocialLinks)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid social links!", nil)
		}
		instructor.SocialLinks = links
	}

	if err := database.Database.Db.Create(&instructor).Error; err != nil {
		log.Printf("Error creating instructor: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create instructor!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Instructor created successfully!", instructor)
}

// AdminUpdateInstructor updates an existing instructor profile
func AdminUpdateInstructor(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	instructorID := c.Locals("instructorID").(int)

	var instructor models.Instructor
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", instructorID, false).First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
	}

	form, ok := c.Locals("validatedInstructorUpdate").(*instructorValidator.InstructorForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if form.Name != "" {
		instructor.Name = form.Name
	}
	if form.Tagline != "" {
		instructor.Tagline = form.Tagline
	}
	if form.Background != "" {
		instructor.Background = form.Background
	}
	if form.Bio != "" {
		instructor.Bio = form.Bio
	}
	if form.Email != "" {
		instructor.Email = form.Email
	}
	if form.ProfileImageURL != "" {
		instructor.ProfileImageURL = form.ProfileImageURL
	}
	if form.IsActive != nil {
		instructor.IsActive = *form.IsActive
	}
	if form.SocialLinks != nil {
		links, err := json.Marshal(form.SocialLinks)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid social links!", nil)
		}
		instructor.SocialLinks = links
	}

	if err := database.Database.Db.Save(&instructor).Error; err != nil {
		log.Printf("Error updating instructor %d: %v", instructorID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update instructor!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor updated successfully!", instructor)
}

// AdminGetAllInstructors lists every instructor for the admin console
func AdminGetAllInstructors(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	var instructors []models.Instructor
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&instructors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch instructors!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructors fetched successfully!", instructors)
}

// AdminGetInstructor fetches one instructor
func AdminGetInstructor(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	instructorID := c.Locals("instructorID").(int)

	var instructor models.Instructor
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", instructorID, false).First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor fetched successfully!", instructor)
}

// AdminDeleteInstructor soft deletes an instructor
func AdminDeleteInstructor(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	instructorID := c.Locals("instructorID").(int)

	var instructor models.Instructor
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", instructorID, false).First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
	}

	instructor.IsDeleted = true
	instructor.IsActive = false
	if err := database.Database.Db.Save(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete instructor!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor deleted successfully!", nil)
}

// GetActiveInstructors lists active instructors for the public site and
// the course form's instructor select
func GetActiveInstructors(c *fiber.Ctx) error {
	var instructors []models.Instructor
	if err := database.Database.Db.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("name asc").Find(&instructors).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch instructors!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructors fetched successfully!", instructors)
}
