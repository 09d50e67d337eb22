package workflow

import (
	"testing"

	"lms_backend/models"
	courseModels "lms_backend/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithInstructorName(t *testing.T) {
	course := courseModels.Course{Title: "Go Basics", InstructorID: 7}

	item := WithInstructorName(course, &models.Instructor{Name: "Ada Lovelace"})
	assert.Equal(t, "Ada Lovelace", item.InstructorName)
	assert.Equal(t, "Go Basics", item.Title)

	missing := WithInstructorName(course, nil)
	assert.Empty(t, missing.InstructorName)
}

func TestAssembleCourseFormOrdersChildren(t *testing.T) {
	course := courseModels.Course{
		Title:       "Go Basics",
		Description: "An introduction to Go for beginners.",
		Category:    "Programming",
		Level:       "beginner",
		Language:    "English",
		Price:       10,
	}

	// Rows arrive deliberately out of order; assembly must sort by order_index.
	modules := []courseModels.CourseModule{
		{Model: gormModel(2), CourseID: 1, Title: "Second", OrderIndex: 2},
		{Model: gormModel(1), CourseID: 1, Title: "First", OrderIndex: 1},
	}
	lessons := []courseModels.ModuleLesson{
		{ModuleID: 1, Title: "B", Duration: 5, OrderIndex: 2},
		{ModuleID: 2, Title: "C", Duration: 5, OrderIndex: 1},
		{ModuleID: 1, Title: "A", Duration: 5, OrderIndex: 1},
	}
	assessments := []courseModels.Assessment{
		{Model: gormModel(9), CourseID: 1, Title: "Quiz", PassingScore: 70, MaxAttempts: 2, OrderIndex: 1},
	}
	questions := []courseModels.AssessmentQuestion{
		{Model: gormModel(21), AssessmentID: 9, QuestionText: "Q2", QuestionType: courseModels.QuestionTrueFalse, Points: 1, OrderIndex: 2},
		{Model: gormModel(20), AssessmentID: 9, QuestionText: "Q1", QuestionType: courseModels.QuestionMultipleChoice, Points: 2, OrderIndex: 1},
	}
	options := []courseModels.AssessmentAnswerOption{
		{QuestionID: 20, OptionText: "wrong", OrderIndex: 2},
		{QuestionID: 20, OptionText: "right", IsCorrect: true, OrderIndex: 1},
		{QuestionID: 21, OptionText: "True", IsCorrect: true, OrderIndex: 1},
		{QuestionID: 21, OptionText: "False", OrderIndex: 2},
	}
	announcements := []courseModels.Announcement{
		{CourseID: 1, Content: "Welcome!", AnnouncementType: courseModels.AnnouncementWelcome},
	}

	form := AssembleCourseForm(course, modules, lessons, assessments, questions, options, announcements)

	require.Len(t, form.Sections, 2)
	assert.Equal(t, "First", form.Sections[0].Title)
	assert.Equal(t, "Second", form.Sections[1].Title)
	require.Len(t, form.Sections[0].Lessons, 2)
	assert.Equal(t, "A", form.Sections[0].Lessons[0].Title)
	assert.Equal(t, "B", form.Sections[0].Lessons[1].Title)
	require.Len(t, form.Sections[1].Lessons, 1)
	assert.Equal(t, "C", form.Sections[1].Lessons[0].Title)

	require.Len(t, form.Assessments, 1)
	require.Len(t, form.Assessments[0].Questions, 2)
	assert.Equal(t, "Q1", form.Assessments[0].Questions[0].QuestionText)
	assert.Equal(t, "Q2", form.Assessments[0].Questions[1].QuestionText)
	require.Len(t, form.Assessments[0].Questions[0].AnswerOptions, 2)
	assert.Equal(t, "right", form.Assessments[0].Questions[0].AnswerOptions[0].OptionText)
	assert.True(t, form.Assessments[0].Questions[0].AnswerOptions[0].IsCorrect)

	assert.True(t, form.EnableAnnouncements)
	assert.Equal(t, "Welcome!", form.WelcomeAnnouncement)

	// Input slices stay untouched.
	assert.Equal(t, "Second", modules[0].Title)
}

func TestAssembleCourseFormRoundTrip(t *testing.T) {
	db := newTestDB(t)

	timeLimit := 15
	original := validForm()
	original.Assessments = []AssessmentForm{
		{
			Title: "Quiz", PassingScore: 80, TimeLimit: &timeLimit, MaxAttempts: 2,
			Questions: []QuestionForm{{
				QuestionText: "What renders the UI?",
				QuestionType: courseModels.QuestionMultipleChoice,
				Points:       1,
				AnswerOptions: []AnswerOptionForm{
					{OptionText: "Components", IsCorrect: true},
					{OptionText: "Databases"},
				},
			}},
		},
	}
	original.EnableAnnouncements = true
	original.WelcomeAnnouncement = "Welcome to class!"

	courseID, err := SaveDraft(db, original, 0, 1)
	require.NoError(t, err)

	var course courseModels.Course
	require.NoError(t, db.First(&course, courseID).Error)

	var modules []courseModels.CourseModule
	require.NoError(t, db.Where("course_id = ?", courseID).Find(&modules).Error)
	var moduleIDs []uint
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	var lessons []courseModels.ModuleLesson
	require.NoError(t, db.Where("module_id IN ?", moduleIDs).Find(&lessons).Error)

	var assessments []courseModels.Assessment
	require.NoError(t, db.Where("course_id = ?", courseID).Find(&assessments).Error)
	var assessmentIDs []uint
	for _, a := range assessments {
		assessmentIDs = append(assessmentIDs, a.ID)
	}

	var questions []courseModels.AssessmentQuestion
	require.NoError(t, db.Where("assessment_id IN ?", assessmentIDs).Find(&questions).Error)
	var questionIDs []uint
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	var options []courseModels.AssessmentAnswerOption
	require.NoError(t, db.Where("question_id IN ?", questionIDs).Find(&options).Error)

	var announcements []courseModels.Announcement
	require.NoError(t, db.Where("course_id = ?", courseID).Find(&announcements).Error)

	assembled := AssembleCourseForm(course, modules, lessons, assessments, questions, options, announcements)
	assert.Equal(t, original, assembled)

	// The assembled form re-saves cleanly over the same course.
	_, err = SaveDraft(db, assembled, courseID, 1)
	require.NoError(t, err)
}

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}
