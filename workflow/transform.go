package workflow

import (
	"sort"

	"lms_backend/models"
	courseModels "lms_backend/models/course"
)

// CourseListItem is the catalog view model: the course row with the
// instructor's display name in place of the raw foreign key.
type CourseListItem struct {
	courseModels.Course
	InstructorName string `json:"instructor_name"`
}

// WithInstructorName attaches the instructor display name to a course row.
// A missing instructor yields an empty name rather than an error.
func WithInstructorName(course courseModels.Course, instructor *models.Instructor) CourseListItem {
	item := CourseListItem{Course: course}
	if instructor != nil {
		item.InstructorName = instructor.Name
	}
	return item
}

// AssembleCourseForm rebuilds the nested authoring form from flat row
// sets, the inverse of SaveDraft. Children are ordered by order_index and
// grouped under their parents; input slices are not mutated.
func AssembleCourseForm(
	course courseModels.Course,
	modules []courseModels.CourseModule,
	lessons []courseModels.ModuleLesson,
	assessments []courseModels.Assessment,
	questions []courseModels.AssessmentQuestion,
	options []courseModels.AssessmentAnswerOption,
	announcements []courseModels.Announcement,
) *CourseForm {
	form := &CourseForm{
		Title:                  course.Title,
		Description:            course.Description,
		Category:               course.Category,
		Level:                  course.Level,
		Language:               course.Language,
		Price:                  course.Price,
		DiscountedPrice:        course.DiscountedPrice,
		ThumbnailURL:           course.ThumbnailURL,
		InstructorID:           course.InstructorID,
		EnableSelfEnrollment:   course.EnableSelfEnrollment,
		TrackProgress:          course.TrackProgress,
		IssueCertificate:       course.CertificateAvailable,
		CertificateTemplateURL: course.CertificateTemplateURL,
	}

	lessonsByModule := make(map[uint][]courseModels.ModuleLesson)
	for _, lesson := range lessons {
		lessonsByModule[lesson.ModuleID] = append(lessonsByModule[lesson.ModuleID], lesson)
	}

	sortedModules := make([]courseModels.CourseModule, len(modules))
	copy(sortedModules, modules)
	sort.SliceStable(sortedModules, func(i, j int) bool {
		return sortedModules[i].OrderIndex < sortedModules[j].OrderIndex
	})

	for _, module := range sortedModules {
		sectionForm := SectionForm{
			Title:       module.Title,
			Description: module.Description,
		}

		moduleLessons := make([]courseModels.ModuleLesson, len(lessonsByModule[module.ID]))
		copy(moduleLessons, lessonsByModule[module.ID])
		sort.SliceStable(moduleLessons, func(i, j int) bool {
			return moduleLessons[i].OrderIndex < moduleLessons[j].OrderIndex
		})

		for _, lesson := range moduleLessons {
			sectionForm.Lessons = append(sectionForm.Lessons, LessonForm{
				Title:    lesson.Title,
				Content:  lesson.Content,
				VideoURL: lesson.VideoURL,
				Duration: lesson.Duration,
			})
		}

		form.Sections = append(form.Sections, sectionForm)
	}

	questionsByAssessment := make(map[uint][]courseModels.AssessmentQuestion)
	for _, question := range questions {
		questionsByAssessment[question.AssessmentID] = append(questionsByAssessment[question.AssessmentID], question)
	}

	optionsByQuestion := make(map[uint][]courseModels.AssessmentAnswerOption)
	for _, option := range options {
		optionsByQuestion[option.QuestionID] = append(optionsByQuestion[option.QuestionID], option)
	}

	sortedAssessments := make([]courseModels.Assessment, len(assessments))
	copy(sortedAssessments, assessments)
	sort.SliceStable(sortedAssessments, func(i, j int) bool {
		return sortedAssessments[i].OrderIndex < sortedAssessments[j].OrderIndex
	})

	for _, assessment := range sortedAssessments {
		assessmentForm := AssessmentForm{
			Title:        assessment.Title,
			Description:  assessment.Description,
			PassingScore: assessment.PassingScore,
			TimeLimit:    assessment.TimeLimit,
			MaxAttempts:  assessment.MaxAttempts,
		}

		assessmentQuestions := make([]courseModels.AssessmentQuestion, len(questionsByAssessment[assessment.ID]))
		copy(assessmentQuestions, questionsByAssessment[assessment.ID])
		sort.SliceStable(assessmentQuestions, func(i, j int) bool {
			return assessmentQuestions[i].OrderIndex < assessmentQuestions[j].OrderIndex
		})

		for _, question := range assessmentQuestions {
			questionForm := QuestionForm{
				QuestionText: question.QuestionText,
				QuestionType: question.QuestionType,
				Points:       question.Points,
			}

			questionOptions := make([]courseModels.AssessmentAnswerOption, len(optionsByQuestion[question.ID]))
			copy(questionOptions, optionsByQuestion[question.ID])
			sort.SliceStable(questionOptions, func(i, j int) bool {
				return questionOptions[i].OrderIndex < questionOptions[j].OrderIndex
			})

			for _, option := range questionOptions {
				questionForm.AnswerOptions = append(questionForm.AnswerOptions, AnswerOptionForm{
					OptionText: option.OptionText,
					IsCorrect:  option.IsCorrect,
				})
			}

			assessmentForm.Questions = append(assessmentForm.Questions, questionForm)
		}

		form.Assessments = append(form.Assessments, assessmentForm)
	}

	for _, announcement := range announcements {
		if announcement.AnnouncementType == courseModels.AnnouncementWelcome {
			form.EnableAnnouncements = true
			form.WelcomeAnnouncement = announcement.Content
			break
		}
	}

	return form
}
