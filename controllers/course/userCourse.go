package controllers

import (
	"time"

	"lms_backend/database"
	"lms_backend/middleware"
	"lms_backend/models"
	courseModels "lms_backend/models/course"
	"lms_backend/workflow"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the current user in a published course
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND status = ? AND is_deleted = ?", courseID, courseModels.StatusPublished, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.EnableSelfEnrollment {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Self enrollment is disabled for this course!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:       userID,
		CourseID:     uint(courseID),
		Status:       "ENROLLED",
		TotalLessons: course.NumberOfLessons,
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// GetMyCourses lists the current user's enrollments with course details
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
	}

	coursesByID := make(map[uint]courseModels.Course)
	if len(courseIDs) > 0 {
		var courses []courseModels.Course
		database.Database.Db.Where("id IN ?", courseIDs).Find(&courses)
		for _, course := range courses {
			coursesByID[course.ID] = course
		}
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		Course courseModels.Course `json:"course"`
	}

	result := make([]EnrollmentWithCourse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		result = append(result, EnrollmentWithCourse{
			Enrollment: enrollment,
			Course:     coursesByID[enrollment.CourseID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", result)
}

// CompleteLesson marks a lesson complete and updates enrollment progress
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.TrackProgress {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Progress tracking is disabled for this course!", nil)
	}

	// The lesson must belong to one of the course's modules
	var lesson courseModels.ModuleLesson
	if err := database.Database.Db.
		Joins("JOIN course_modules ON course_modules.id = module_lessons.module_id").
		Where("module_lessons.id = ? AND course_modules.course_id = ?", lessonID, courseID).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var existing courseModels.LessonCompletion
	if err := database.Database.Db.
		Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed!", enrollment)
	}

	completion := courseModels.LessonCompletion{
		UserID:   userID,
		CourseID: uint(courseID),
		LessonID: uint(lessonID),
	}
	if err := database.Database.Db.Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	// Recompute progress from completions of lessons that still exist;
	// a re-saved course replaces its lesson rows and invalidates old ones
	completedCount, err := workflow.CompletedLessonCount(database.Database.Db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	enrollment.CompletedLessons = int(completedCount)
	enrollment.TotalLessons = course.NumberOfLessons
	if enrollment.TotalLessons > 0 {
		enrollment.Progress = float64(enrollment.CompletedLessons) / float64(enrollment.TotalLessons) * 100
	}

	if enrollment.CompletedLessons >= enrollment.TotalLessons && enrollment.TotalLessons > 0 {
		enrollment.Status = "COMPLETED"
		now := time.Now()
		enrollment.CompletedAt = &now
	} else {
		enrollment.Status = "IN_PROGRESS"
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", enrollment)
}
