package workflow

import (
	"errors"
	"fmt"
	"testing"

	"lms_backend/database"
	courseModels "lms_backend/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func validForm() *CourseForm {
	return &CourseForm{
		Title:                "Intro to React",
		Description:          "Learn React from scratch with hands-on projects.",
		Category:             "Programming",
		Level:                "beginner",
		Language:             "English",
		Price:                49.99,
		EnableSelfEnrollment: true,
		TrackProgress:        true,
		Sections: []SectionForm{
			{
				Title: "Basics",
				Lessons: []LessonForm{
					{Title: "Setup", Duration: 10},
					{Title: "Hello World", Duration: 15},
				},
			},
		},
	}
}

func TestSaveDraftIntroToReactScenario(t *testing.T) {
	db := newTestDB(t)

	courseID, err := SaveDraft(db, validForm(), 0, 1)
	require.NoError(t, err)
	require.NotZero(t, courseID)

	var course courseModels.Course
	require.NoError(t, db.First(&course, courseID).Error)
	assert.Equal(t, "Intro to React", course.Title)
	assert.Equal(t, courseModels.StatusDraft, course.Status)
	assert.Equal(t, 2, course.NumberOfLessons)

	var modules []courseModels.CourseModule
	require.NoError(t, db.Where("course_id = ?", courseID).Find(&modules).Error)
	require.Len(t, modules, 1)
	assert.Equal(t, "Basics", modules[0].Title)
	assert.Equal(t, 1, modules[0].OrderIndex)

	var lessons []courseModels.ModuleLesson
	require.NoError(t, db.Where("module_id = ?", modules[0].ID).Order("order_index asc").Find(&lessons).Error)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Setup", lessons[0].Title)
	assert.Equal(t, 1, lessons[0].OrderIndex)
	assert.Equal(t, 10, lessons[0].Duration)
	assert.Equal(t, "Hello World", lessons[1].Title)
	assert.Equal(t, 2, lessons[1].OrderIndex)
	assert.Equal(t, 15, lessons[1].Duration)

	var assessmentCount, announcementCount int64
	db.Model(&courseModels.Assessment{}).Where("course_id = ?", courseID).Count(&assessmentCount)
	db.Model(&courseModels.Announcement{}).Where("course_id = ?", courseID).Count(&announcementCount)
	assert.Zero(t, assessmentCount)
	assert.Zero(t, announcementCount)
}

func TestSaveDraftAssignsDenseOrderIndices(t *testing.T) {
	db := newTestDB(t)

	form := validForm()
	form.Sections = []SectionForm{
		{Title: "One", Lessons: []LessonForm{{Title: "A", Duration: 5}}},
		{Title: "Two", Lessons: []LessonForm{
			{Title: "B", Duration: 5},
			{Title: "C", Duration: 5},
			{Title: "D", Duration: 5},
		}},
		{Title: "Three"},
	}

	courseID, err := SaveDraft(db, form, 0, 1)
	require.NoError(t, err)

	var modules []courseModels.CourseModule
	require.NoError(t, db.Where("course_id = ?", courseID).Order("order_index asc").Find(&modules).Error)
	require.Len(t, modules, 3)
	for i, module := range modules {
		assert.Equal(t, i+1, module.OrderIndex)
		assert.Equal(t, form.Sections[i].Title, module.Title)

		var lessons []courseModels.ModuleLesson
		require.NoError(t, db.Where("module_id = ?", module.ID).Order("order_index asc").Find(&lessons).Error)
		require.Len(t, lessons, len(form.Sections[i].Lessons))
		for j, lesson := range lessons {
			assert.Equal(t, j+1, lesson.OrderIndex)
		}
	}
}

func TestSaveDraftPersistsAssessmentTree(t *testing.T) {
	db := newTestDB(t)

	timeLimit := 30
	form := validForm()
	form.Assessments = []AssessmentForm{
		{
			Title:        "Final Quiz",
			PassingScore: 70,
			TimeLimit:    &timeLimit,
			MaxAttempts:  3,
			Questions: []QuestionForm{
				{
					QuestionText: "What is JSX?",
					QuestionType: courseModels.QuestionMultipleChoice,
					Points:       2,
					AnswerOptions: []AnswerOptionForm{
						{OptionText: "A syntax extension", IsCorrect: true},
						{OptionText: "A database", IsCorrect: false},
						{OptionText: "A browser", IsCorrect: false},
					},
				},
				{
					QuestionText: "React is a framework.",
					QuestionType: courseModels.QuestionTrueFalse,
					Points:       1,
					AnswerOptions: []AnswerOptionForm{
						{OptionText: "True", IsCorrect: false},
						{OptionText: "False", IsCorrect: true},
					},
				},
			},
		},
	}

	courseID, err := SaveDraft(db, form, 0, 1)
	require.NoError(t, err)

	var assessments []courseModels.Assessment
	require.NoError(t, db.Where("course_id = ?", courseID).Find(&assessments).Error)
	require.Len(t, assessments, 1)
	assert.Equal(t, 1, assessments[0].OrderIndex)
	require.NotNil(t, assessments[0].TimeLimit)
	assert.Equal(t, 30, *assessments[0].TimeLimit)

	var questions []courseModels.AssessmentQuestion
	require.NoError(t, db.Where("assessment_id = ?", assessments[0].ID).Order("order_index asc").Find(&questions).Error)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].OrderIndex)
	assert.Equal(t, 2, questions[1].OrderIndex)

	var options []courseModels.AssessmentAnswerOption
	require.NoError(t, db.Where("question_id = ?", questions[0].ID).Order("order_index asc").Find(&options).Error)
	require.Len(t, options, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{options[0].OrderIndex, options[1].OrderIndex, options[2].OrderIndex})
	assert.True(t, options[0].IsCorrect)
}

func TestSaveDraftFullReplace(t *testing.T) {
	db := newTestDB(t)

	courseID, err := SaveDraft(db, validForm(), 0, 1)
	require.NoError(t, err)

	second := validForm()
	second.Title = "Intro to React, Second Edition"
	second.Sections = []SectionForm{
		{Title: "Fundamentals", Lessons: []LessonForm{{Title: "Components", Duration: 20}}},
		{Title: "Hooks", Lessons: []LessonForm{{Title: "useState", Duration: 25}}},
	}

	replacedID, err := SaveDraft(db, second, courseID, 1)
	require.NoError(t, err)
	assert.Equal(t, courseID, replacedID)

	var course courseModels.Course
	require.NoError(t, db.First(&course, courseID).Error)
	assert.Equal(t, "Intro to React, Second Edition", course.Title)

	var modules []courseModels.CourseModule
	require.NoError(t, db.Unscoped().Where("course_id = ?", courseID).Order("order_index asc").Find(&modules).Error)
	require.Len(t, modules, 2)
	assert.Equal(t, "Fundamentals", modules[0].Title)
	assert.Equal(t, "Hooks", modules[1].Title)

	var lessonCount int64
	db.Unscoped().Model(&courseModels.ModuleLesson{}).
		Where("module_id IN ?", []uint{modules[0].ID, modules[1].ID}).Count(&lessonCount)
	assert.Equal(t, int64(2), lessonCount)
}

func TestSaveDraftEditReplacesLessonRows(t *testing.T) {
	db := newTestDB(t)

	courseID, err := PublishCourse(db, validForm(), 0, 1)
	require.NoError(t, err)

	edited := validForm()
	edited.Sections[0].Lessons[0].Duration = 20

	_, err = SaveDraft(db, edited, courseID, 1)
	require.NoError(t, err)

	var lessonCount int64
	db.Unscoped().Model(&courseModels.ModuleLesson{}).
		Joins("JOIN course_modules ON course_modules.id = module_lessons.module_id").
		Where("course_modules.course_id = ?", courseID).Count(&lessonCount)
	assert.Equal(t, int64(2), lessonCount)

	var lessons []courseModels.ModuleLesson
	require.NoError(t, db.
		Joins("JOIN course_modules ON course_modules.id = module_lessons.module_id").
		Where("course_modules.course_id = ?", courseID).
		Order("module_lessons.order_index asc").Find(&lessons).Error)
	require.Len(t, lessons, 2)
	assert.Equal(t, 20, lessons[0].Duration)
}

func TestSaveDraftRejectsInvalidForms(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name   string
		mutate func(form *CourseForm)
	}{
		{"missing title", func(f *CourseForm) { f.Title = "" }},
		{"negative price", func(f *CourseForm) { f.Price = -1 }},
		{"no sections", func(f *CourseForm) { f.Sections = nil }},
		{"zero lesson duration", func(f *CourseForm) { f.Sections[0].Lessons[0].Duration = 0 }},
		{"single answer option", func(f *CourseForm) {
			f.Assessments = []AssessmentForm{{
				Title: "Quiz", PassingScore: 70, MaxAttempts: 1,
				Questions: []QuestionForm{{
					QuestionText: "Q?", QuestionType: courseModels.QuestionMultipleChoice, Points: 1,
					AnswerOptions: []AnswerOptionForm{{OptionText: "only one", IsCorrect: true}},
				}},
			}}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(form)

			_, err := SaveDraft(db, form, 0, 1)
			require.Error(t, err)

			var courseCount int64
			db.Model(&courseModels.Course{}).Count(&courseCount)
			assert.Zero(t, courseCount, "no rows may be written before validation passes")
		})
	}
}

func TestNewCourseCleanupOnFailure(t *testing.T) {
	db := newTestDB(t)

	form := validForm()
	form.EnableAnnouncements = true
	form.WelcomeAnnouncement = "Welcome aboard!"

	saga, course := BuildSaveDraftSaga(form, 0, 1)
	saga.Append(Step{
		Name: "final insert",
		Run:  func(db *gorm.DB) error { return errors.New("backend write failed") },
	})

	err := saga.Run(db)
	require.Error(t, err)

	var fetched courseModels.Course
	err = db.Unscoped().First(&fetched, course.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "course row must be removed by cleanup")

	var moduleCount, lessonCount, announcementCount int64
	db.Unscoped().Model(&courseModels.CourseModule{}).Where("course_id = ?", course.ID).Count(&moduleCount)
	db.Unscoped().Model(&courseModels.ModuleLesson{}).Count(&lessonCount)
	db.Unscoped().Model(&courseModels.Announcement{}).Where("course_id = ?", course.ID).Count(&announcementCount)
	assert.Zero(t, moduleCount)
	assert.Zero(t, lessonCount)
	assert.Zero(t, announcementCount)
}

func TestNewCourseMidStepFailureRemovesModuleRow(t *testing.T) {
	db := newTestDB(t)

	// Make the lesson insert fail after its module insert succeeded, so
	// the failing step itself has rows to undo.
	require.NoError(t, db.Migrator().DropTable(&courseModels.ModuleLesson{}))

	_, err := SaveDraft(db, validForm(), 0, 1)
	require.Error(t, err)

	var courseCount, moduleCount int64
	db.Unscoped().Model(&courseModels.Course{}).Count(&courseCount)
	db.Unscoped().Model(&courseModels.CourseModule{}).Count(&moduleCount)
	assert.Zero(t, courseCount, "course row must be removed by cleanup")
	assert.Zero(t, moduleCount, "failing step's module row must be removed by cleanup")
}

func TestEditFailureLeavesPartialStateWithoutCleanup(t *testing.T) {
	db := newTestDB(t)

	courseID, err := SaveDraft(db, validForm(), 0, 1)
	require.NoError(t, err)

	saga, _ := BuildSaveDraftSaga(validForm(), courseID, 1)
	saga.Append(Step{
		Name: "final insert",
		Run:  func(db *gorm.DB) error { return errors.New("backend write failed") },
	})

	require.Error(t, saga.Run(db))

	// Editing an existing course has no compensation path; the re-inserted
	// rows stay and the caller re-saves the whole form.
	var course courseModels.Course
	require.NoError(t, db.First(&course, courseID).Error)

	var moduleCount int64
	db.Model(&courseModels.CourseModule{}).Where("course_id = ?", courseID).Count(&moduleCount)
	assert.Equal(t, int64(1), moduleCount)
}

func TestPublishCourse(t *testing.T) {
	db := newTestDB(t)

	form := validForm()
	form.EnableAnnouncements = true
	form.WelcomeAnnouncement = "Welcome aboard!"

	courseID, err := PublishCourse(db, form, 0, 1)
	require.NoError(t, err)

	var course courseModels.Course
	require.NoError(t, db.First(&course, courseID).Error)
	assert.Equal(t, courseModels.StatusPublished, course.Status)

	var announcement courseModels.Announcement
	require.NoError(t, db.Where("course_id = ?", courseID).First(&announcement).Error)
	assert.Equal(t, courseModels.AnnouncementWelcome, announcement.AnnouncementType)
	assert.True(t, announcement.Published)
}

func TestPublishLeavesStatusWhenSaveFails(t *testing.T) {
	db := newTestDB(t)

	courseID, err := PublishCourse(db, validForm(), 0, 1)
	require.NoError(t, err)

	broken := validForm()
	broken.Title = ""

	_, err = PublishCourse(db, broken, courseID, 1)
	require.Error(t, err)

	var course courseModels.Course
	require.NoError(t, db.First(&course, courseID).Error)
	assert.Equal(t, courseModels.StatusPublished, course.Status, "failed save must not touch status")
}

func TestResaveInvalidatesStaleLessonCompletions(t *testing.T) {
	db := newTestDB(t)

	courseID, err := SaveDraft(db, validForm(), 0, 1)
	require.NoError(t, err)

	var lessons []courseModels.ModuleLesson
	require.NoError(t, db.Order("id asc").Find(&lessons).Error)
	require.Len(t, lessons, 2)

	for _, lesson := range lessons {
		require.NoError(t, db.Create(&courseModels.LessonCompletion{
			UserID:   7,
			CourseID: courseID,
			LessonID: lesson.ID,
		}).Error)
	}

	count, err := CompletedLessonCount(db, 7, courseID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// The full-replace save issues fresh lesson rows, so the old
	// completions stop counting toward progress.
	_, err = SaveDraft(db, validForm(), courseID, 1)
	require.NoError(t, err)

	count, err = CompletedLessonCount(db, 7, courseID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteCourseAggregate(t *testing.T) {
	db := newTestDB(t)

	form := validForm()
	form.EnableAnnouncements = true
	form.WelcomeAnnouncement = "Welcome!"

	courseID, err := SaveDraft(db, form, 0, 1)
	require.NoError(t, err)

	require.NoError(t, DeleteCourseAggregate(db, courseID))

	var course courseModels.Course
	assert.ErrorIs(t, db.Unscoped().First(&course, courseID).Error, gorm.ErrRecordNotFound)

	var moduleCount, announcementCount int64
	db.Unscoped().Model(&courseModels.CourseModule{}).Where("course_id = ?", courseID).Count(&moduleCount)
	db.Unscoped().Model(&courseModels.Announcement{}).Where("course_id = ?", courseID).Count(&announcementCount)
	assert.Zero(t, moduleCount)
	assert.Zero(t, announcementCount)
}
