package controllers

import (
	"log"
	"mime/multipart"

	"lms_backend/database"
	"lms_backend/middleware"
	"lms_backend/models"
	courseModels "lms_backend/models/course"
	"lms_backend/utils"
	"lms_backend/workflow"

	"github.com/gofiber/fiber/v2"
)

// requireAdmin loads the requesting user and checks the admin role. When
// the check fails the response has already been written and the returned
// error is what the handler should return.
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

// AdminSaveCourseDraft creates a new draft course aggregate from the form
func AdminSaveCourseDraft(c *fiber.Ctx) error {
	user, err := requireAdmin(c)
	if err != nil {
		return err
	}

	form, ok := c.Locals("validatedCourseForm").(*workflow.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	courseID, err := workflow.SaveDraft(database.Database.Db, form, 0, user.ID)
	if err != nil {
		log.Printf("Error saving course draft: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course draft!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Draft saved successfully!", fiber.Map{
		"course_id": courseID,
	})
}

// AdminUpdateCourseDraft fully replaces an existing course's content
func AdminUpdateCourseDraft(c *fiber.Ctx) error {
	user, err := requireAdmin(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	form, ok := c.Locals("validatedCourseForm").(*workflow.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	savedID, err := workflow.SaveDraft(database.Database.Db, form, course.ID, user.ID)
	if err != nil {
		log.Printf("Error updating course draft %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course draft!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Draft saved successfully!", fiber.Map{
		"course_id": savedID,
	})
}

// AdminPublishCourse saves the form and advances the course to published
func AdminPublishCourse(c *fiber.Ctx) error {
	user, err := requireAdmin(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	form, ok := c.Locals("validatedCourseForm").(*workflow.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	publishedID, err := workflow.PublishCourse(database.Database.Db, form, course.ID, user.ID)
	if err != nil {
		log.Printf("Error publishing course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	// Notify the instructor; a failed email never fails the publish
	var instructor models.Instructor
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", form.InstructorID, false).First(&instructor).Error; err == nil {
		go func(email, name, title string) {
			if err := utils.SendCoursePublishedEmail(email, name, title); err != nil {
				log.Printf("Error sending course published email: %v", err)
			}
		}(instructor.Email, instructor.Name, form.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", fiber.Map{
		"course_id": publishedID,
	})
}

// AdminGetAllCourses lists all courses for admin with instructor names
func AdminGetAllCourses(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedAdminList").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Status string `query:"status"`
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

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	if ok && reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
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

// attachInstructorNames resolves instructor display names for a course page
func attachInstructorNames(courses []courseModels.Course) []workflow.CourseListItem {
	instructorIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		if course.InstructorID != 0 {
			instructorIDs = append(instructorIDs, course.InstructorID)
		}
	}

	instructorsByID := make(map[uint]models.Instructor)
	if len(instructorIDs) > 0 {
		var instructors []models.Instructor
		database.Database.Db.Where("id IN ?", instructorIDs).Find(&instructors)
		for _, instructor := range instructors {
			instructorsByID[instructor.ID] = instructor
		}
	}

	items := make([]workflow.CourseListItem, 0, len(courses))
	for _, course := range courses {
		var instructor *models.Instructor
		if found, ok := instructorsByID[course.InstructorID]; ok {
			instructor = &found
		}
		items = append(items, workflow.WithInstructorName(course, instructor))
	}
	return items
}

// AdminGetCourseDetails returns the course row plus the assembled
// authoring form rebuilt from its nested rows
func AdminGetCourseDetails(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	form, err := loadCourseForm(course)
	if err != nil {
		log.Printf("Error loading course %d rows: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course": course,
		"form":   form,
	})
}

// loadCourseForm fetches every nested row set of a course and assembles
// the authoring form from them
func loadCourseForm(course courseModels.Course) (*workflow.CourseForm, error) {
	db := database.Database.Db

	var modules []courseModels.CourseModule
	if err := db.Where("course_id = ?", course.ID).Find(&modules).Error; err != nil {
		return nil, err
	}

	moduleIDs := make([]uint, 0, len(modules))
	for _, module := range modules {
		moduleIDs = append(moduleIDs, module.ID)
	}

	var lessons []courseModels.ModuleLesson
	if len(moduleIDs) > 0 {
		if err := db.Where("module_id IN ?", moduleIDs).Find(&lessons).Error; err != nil {
			return nil, err
		}
	}

	var assessments []courseModels.Assessment
	if err := db.Where("course_id = ?", course.ID).Find(&assessments).Error; err != nil {
		return nil, err
	}

	assessmentIDs := make([]uint, 0, len(assessments))
	for _, assessment := range assessments {
		assessmentIDs = append(assessmentIDs, assessment.ID)
	}

	var questions []courseModels.AssessmentQuestion
	if len(assessmentIDs) > 0 {
		if err := db.Where("assessment_id IN ?", assessmentIDs).Find(&questions).Error; err != nil {
			return nil, err
		}
	}

	questionIDs := make([]uint, 0, len(questions))
	for _, question := range questions {
		questionIDs = append(questionIDs, question.ID)
	}

	var options []courseModels.AssessmentAnswerOption
	if len(questionIDs) > 0 {
		if err := db.Where("question_id IN ?", questionIDs).Find(&options).Error; err != nil {
			return nil, err
		}
	}

	var announcements []courseModels.Announcement
	if err := db.Where("course_id = ?", course.ID).Find(&announcements).Error; err != nil {
		return nil, err
	}

	return workflow.AssembleCourseForm(course, modules, lessons, assessments, questions, options, announcements), nil
}

// AdminDeleteCourse archives a course; the purge scheduler removes the
// aggregate after the retention window
func AdminDeleteCourse(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Status = courseModels.StatusArchived
	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminUploadAsset stores a validated upload and returns its public URL
func AdminUploadAsset(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	class := c.Locals("uploadClass").(string)
	file, ok := c.Locals("uploadFile").(*multipart.FileHeader)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	storedPath, err := utils.SaveUploadedFile(file, class)
	if err != nil {
		log.Printf("Error storing uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"url": utils.GetFileURL(storedPath),
	})
}
