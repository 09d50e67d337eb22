package controllers

import (
	"lms_backend/database"
	"lms_backend/middleware"
	"lms_backend/models"
	courseModels "lms_backend/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedCourses lists the public course catalog
func GetPublishedCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page     *int   `query:"page"`
		Limit    *int   `query:"limit"`
		Category string `query:"category"`
		Level    string `query:"level"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("status = ? AND is_deleted = ?", courseModels.StatusPublished, false)

	if ok && reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if ok && reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	items := attachInstructorNames(courses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": items,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetPublishedCourseDetails returns a published course with its modules
// and lessons for the public course page
func GetPublishedCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND status = ? AND is_deleted = ?", courseID, courseModels.StatusPublished, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.CourseModule
	database.Database.Db.Where("course_id = ?", courseID).Order("order_index asc").Find(&modules)

	moduleIDs := make([]uint, 0, len(modules))
	for _, module := range modules {
		moduleIDs = append(moduleIDs, module.ID)
	}

	var lessons []courseModels.ModuleLesson
	if len(moduleIDs) > 0 {
		database.Database.Db.Where("module_id IN ?", moduleIDs).Order("order_index asc").Find(&lessons)
	}

	var instructor models.Instructor
	instructorName := ""
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", course.InstructorID, false).First(&instructor).Error; err == nil {
		instructorName = instructor.Name
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":          course,
		"modules":         modules,
		"lessons":         lessons,
		"instructor_name": instructorName,
	})
}

// GetCourseAnnouncements lists published announcements of a published course
func GetCourseAnnouncements(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND status = ? AND is_deleted = ?", courseID, courseModels.StatusPublished, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var announcements []courseModels.Announcement
	if err := database.Database.Db.
		Where("course_id = ? AND published = ?", courseID, true).
		Order("created_at desc").Find(&announcements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch announcements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched successfully!", announcements)
}

// GetCourseCategories lists the catalog categories
func GetCourseCategories(c *fiber.Ctx) error {
	var categories []models.CourseCategory
	if err := database.Database.Db.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}
