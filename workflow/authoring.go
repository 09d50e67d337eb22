package workflow

import (
	"fmt"

	courseModels "lms_backend/models/course"

	"gorm.io/gorm"
)

// applyForm copies the flat course fields from the form onto the row.
// Saving always writes the course back to draft; only PublishCourse moves
// it to published afterwards.
func applyForm(course *courseModels.Course, form *CourseForm) {
	course.Title = form.Title
	course.Description = form.Description
	course.Category = form.Category
	course.Level = form.Level
	course.Language = form.Language
	course.Price = form.Price
	course.DiscountedPrice = form.DiscountedPrice
	course.ThumbnailURL = form.ThumbnailURL
	course.InstructorID = form.InstructorID
	course.NumberOfLessons = form.TotalLessons()
	course.CertificateAvailable = form.IssueCertificate
	course.CertificateTemplateURL = form.CertificateTemplateURL
	course.EnableSelfEnrollment = form.EnableSelfEnrollment
	course.TrackProgress = form.TrackProgress
	course.Status = courseModels.StatusDraft
}

// maybeCompensate attaches a compensation only for brand-new courses.
// Editing an existing course keeps the source behavior: a mid-save failure
// leaves whatever was written, and the caller re-saves the whole form.
func maybeCompensate(isNew bool, fn func(db *gorm.DB) error) func(db *gorm.DB) error {
	if !isNew {
		return nil
	}
	return fn
}

// BuildSaveDraftSaga assembles the full-replace save as an ordered saga:
// upsert the course row, clear existing children (edits only), re-insert
// modules/lessons, assessments/questions/options and the optional welcome
// announcement, all with dense 1-based order indices following form order.
// The returned course row carries the persisted id once the saga has run.
func BuildSaveDraftSaga(form *CourseForm, existingCourseID uint, userID uint) (*Saga, *courseModels.Course) {
	isNew := existingCourseID == 0
	course := &courseModels.Course{}

	saga := NewSaga()

	saga.Append(Step{
		Name: "persist course row",
		Run: func(db *gorm.DB) error {
			if isNew {
				applyForm(course, form)
				course.CreatedBy = userID
				return db.Create(course).Error
			}
			if err := db.Where("id = ? AND is_deleted = ?", existingCourseID, false).First(course).Error; err != nil {
				return err
			}
			applyForm(course, form)
			return db.Save(course).Error
		},
		Compensate: maybeCompensate(isNew, func(db *gorm.DB) error {
			return db.Unscoped().Where("id = ?", course.ID).Delete(&courseModels.Course{}).Error
		}),
	})

	if !isNew {
		saga.Append(Step{
			Name: "clear nested rows",
			Run: func(db *gorm.DB) error {
				return ClearCourseChildren(db, existingCourseID)
			},
		})
	}

	for i := range form.Sections {
		i := i
		section := form.Sections[i]
		var moduleID uint

		saga.Append(Step{
			Name: fmt.Sprintf("insert section %d", i+1),
			Run: func(db *gorm.DB) error {
				module := courseModels.CourseModule{
					CourseID:    course.ID,
					Title:       section.Title,
					Description: section.Description,
					OrderIndex:  i + 1,
				}
				if err := db.Create(&module).Error; err != nil {
					return err
				}
				moduleID = module.ID

				for j, lesson := range section.Lessons {
					row := courseModels.ModuleLesson{
						ModuleID:   moduleID,
						Title:      lesson.Title,
						Content:    lesson.Content,
						VideoURL:   lesson.VideoURL,
						Duration:   lesson.Duration,
						OrderIndex: j + 1,
					}
					if err := db.Create(&row).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Compensate: maybeCompensate(isNew, func(db *gorm.DB) error {
				if moduleID == 0 {
					return nil
				}
				// The module row must go even when the lesson delete fails,
				// otherwise a mid-step failure leaves an orphaned module.
				lessonErr := db.Unscoped().Where("module_id = ?", moduleID).Delete(&courseModels.ModuleLesson{}).Error
				if err := db.Unscoped().Where("id = ?", moduleID).Delete(&courseModels.CourseModule{}).Error; err != nil {
					return err
				}
				return lessonErr
			}),
		})
	}

	for i := range form.Assessments {
		i := i
		assessment := form.Assessments[i]
		var assessmentID uint
		var questionIDs []uint

		saga.Append(Step{
			Name: fmt.Sprintf("insert assessment %d", i+1),
			Run: func(db *gorm.DB) error {
				row := courseModels.Assessment{
					CourseID:     course.ID,
					Title:        assessment.Title,
					Description:  assessment.Description,
					PassingScore: assessment.PassingScore,
					TimeLimit:    assessment.TimeLimit,
					MaxAttempts:  assessment.MaxAttempts,
					OrderIndex:   i + 1,
				}
				if err := db.Create(&row).Error; err != nil {
					return err
				}
				assessmentID = row.ID

				for j, question := range assessment.Questions {
					questionRow := courseModels.AssessmentQuestion{
						AssessmentID: assessmentID,
						QuestionText: question.QuestionText,
						QuestionType: question.QuestionType,
						Points:       question.Points,
						OrderIndex:   j + 1,
					}
					if err := db.Create(&questionRow).Error; err != nil {
						return err
					}
					questionIDs = append(questionIDs, questionRow.ID)

					for k, option := range question.AnswerOptions {
						optionRow := courseModels.AssessmentAnswerOption{
							QuestionID: questionRow.ID,
							OptionText: option.OptionText,
							IsCorrect:  option.IsCorrect,
							OrderIndex: k + 1,
						}
						if err := db.Create(&optionRow).Error; err != nil {
							return err
						}
					}
				}
				return nil
			},
			Compensate: maybeCompensate(isNew, func(db *gorm.DB) error {
				if assessmentID == 0 {
					return nil
				}
				var childErr error
				if len(questionIDs) > 0 {
					childErr = db.Unscoped().Where("question_id IN ?", questionIDs).Delete(&courseModels.AssessmentAnswerOption{}).Error
					if err := db.Unscoped().Where("id IN ?", questionIDs).Delete(&courseModels.AssessmentQuestion{}).Error; err != nil && childErr == nil {
						childErr = err
					}
				}
				if err := db.Unscoped().Where("id = ?", assessmentID).Delete(&courseModels.Assessment{}).Error; err != nil {
					return err
				}
				return childErr
			}),
		})
	}

	if form.EnableAnnouncements && form.WelcomeAnnouncement != "" {
		saga.Append(Step{
			Name: "insert welcome announcement",
			Run: func(db *gorm.DB) error {
				announcement := courseModels.Announcement{
					CourseID:         course.ID,
					Title:            "Welcome to the Course!",
					Content:          form.WelcomeAnnouncement,
					AnnouncementType: courseModels.AnnouncementWelcome,
					Published:        false,
					CreatedBy:        userID,
				}
				return db.Create(&announcement).Error
			},
			Compensate: maybeCompensate(isNew, func(db *gorm.DB) error {
				return db.Unscoped().Where("course_id = ?", course.ID).Delete(&courseModels.Announcement{}).Error
			}),
		})
	}

	return saga, course
}

// SaveDraft persists the validated form as a draft course aggregate and
// returns the course id for chaining into publish.
func SaveDraft(db *gorm.DB, form *CourseForm, existingCourseID uint, userID uint) (uint, error) {
	if err := form.Validate(); err != nil {
		return 0, err
	}

	saga, course := BuildSaveDraftSaga(form, existingCourseID, userID)
	if err := saga.Run(db); err != nil {
		return 0, err
	}

	return course.ID, nil
}

// PublishCourse saves the draft first, then advances the course status and
// publishes the pending welcome announcement. If either follow-up write
// fails after a successful save, the content stays persisted with the
// status unchanged; the caller's remedy is to publish again.
func PublishCourse(db *gorm.DB, form *CourseForm, existingCourseID uint, userID uint) (uint, error) {
	courseID, err := SaveDraft(db, form, existingCourseID, userID)
	if err != nil {
		return 0, err
	}

	if err := db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Update("status", courseModels.StatusPublished).Error; err != nil {
		return courseID, fmt.Errorf("publish course: %w", err)
	}

	if err := db.Model(&courseModels.Announcement{}).
		Where("course_id = ? AND announcement_type = ?", courseID, courseModels.AnnouncementWelcome).
		Update("published", true).Error; err != nil {
		return courseID, fmt.Errorf("publish announcement: %w", err)
	}

	return courseID, nil
}

// ClearCourseChildren hard-deletes every nested row of a course in strict
// child-before-parent order: answer options, questions, assessments,
// lessons, modules, announcements.
func ClearCourseChildren(db *gorm.DB, courseID uint) error {
	var assessmentIDs []uint
	if err := db.Model(&courseModels.Assessment{}).Where("course_id = ?", courseID).
		Pluck("id", &assessmentIDs).Error; err != nil {
		return err
	}

	if len(assessmentIDs) > 0 {
		var questionIDs []uint
		if err := db.Model(&courseModels.AssessmentQuestion{}).Where("assessment_id IN ?", assessmentIDs).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := db.Unscoped().Where("question_id IN ?", questionIDs).
				Delete(&courseModels.AssessmentAnswerOption{}).Error; err != nil {
				return err
			}
		}
		if err := db.Unscoped().Where("assessment_id IN ?", assessmentIDs).
			Delete(&courseModels.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		if err := db.Unscoped().Where("course_id = ?", courseID).
			Delete(&courseModels.Assessment{}).Error; err != nil {
			return err
		}
	}

	var moduleIDs []uint
	if err := db.Model(&courseModels.CourseModule{}).Where("course_id = ?", courseID).
		Pluck("id", &moduleIDs).Error; err != nil {
		return err
	}

	if len(moduleIDs) > 0 {
		if err := db.Unscoped().Where("module_id IN ?", moduleIDs).
			Delete(&courseModels.ModuleLesson{}).Error; err != nil {
			return err
		}
		if err := db.Unscoped().Where("course_id = ?", courseID).
			Delete(&courseModels.CourseModule{}).Error; err != nil {
			return err
		}
	}

	return db.Unscoped().Where("course_id = ?", courseID).
		Delete(&courseModels.Announcement{}).Error
}

// CompletedLessonCount counts a student's completions that still point at
// a current lesson of the course. A full-replace save removes the old
// lesson rows, so completions left behind by a previous version of the
// course no longer count toward progress.
func CompletedLessonCount(db *gorm.DB, userID, courseID uint) (int64, error) {
	var count int64
	err := db.Model(&courseModels.LessonCompletion{}).
		Joins("JOIN module_lessons ON module_lessons.id = lesson_completions.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = module_lessons.module_id").
		Where("lesson_completions.user_id = ? AND course_modules.course_id = ? AND lesson_completions.is_deleted = ?",
			userID, courseID, false).
		Count(&count).Error
	return count, err
}

// DeleteCourseAggregate removes the whole aggregate including enrollment
// rows and the course row itself. Used by the retention purge job.
func DeleteCourseAggregate(db *gorm.DB, courseID uint) error {
	if err := ClearCourseChildren(db, courseID); err != nil {
		return err
	}
	if err := db.Unscoped().Where("course_id = ?", courseID).
		Delete(&courseModels.LessonCompletion{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("course_id = ?", courseID).
		Delete(&courseModels.Enrollment{}).Error; err != nil {
		return err
	}
	return db.Unscoped().Where("id = ?", courseID).
		Delete(&courseModels.Course{}).Error
}
