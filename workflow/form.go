package workflow

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CourseForm is the serializable course-authoring form. It is built either
// from a request body (admin save endpoints) or from persisted rows
// (AssembleCourseForm) and is the single input of SaveDraft/PublishCourse.
type CourseForm struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required,min=10"`
	Category        string   `json:"category" validate:"required"`
	Level           string   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Language        string   `json:"language" validate:"required,oneof=English French Spanish German"`
	Price           float64  `json:"price" validate:"gte=0"`
	DiscountedPrice *float64 `json:"discounted_price" validate:"omitempty,gte=0"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	InstructorID    uint     `json:"instructor_id"`

	EnableSelfEnrollment bool `json:"enable_self_enrollment"`
	TrackProgress        bool `json:"track_progress"`

	Sections []SectionForm `json:"sections" validate:"required,min=1,dive"`

	Assessments []AssessmentForm `json:"assessments" validate:"dive"`

	IssueCertificate       bool   `json:"issue_certificate"`
	CertificateTemplateURL string `json:"certificate_template_url"`

	EnableAnnouncements bool   `json:"enable_announcements"`
	WelcomeAnnouncement string `json:"welcome_announcement"`
}

type SectionForm struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Lessons     []LessonForm `json:"lessons" validate:"dive"`
}

type LessonForm struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url"`
	Duration int    `json:"duration" validate:"gte=1"`
}

type AssessmentForm struct {
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`
	PassingScore int            `json:"passing_score" validate:"gte=0,lte=100"`
	TimeLimit    *int           `json:"time_limit" validate:"omitempty,gte=1"`
	MaxAttempts  int            `json:"max_attempts" validate:"gte=1"`
	Questions    []QuestionForm `json:"questions" validate:"dive"`
}

type QuestionForm struct {
	QuestionText  string             `json:"question_text" validate:"required"`
	QuestionType  string             `json:"question_type" validate:"required,oneof=multiple_choice true_false"`
	Points        int                `json:"points" validate:"gte=1"`
	AnswerOptions []AnswerOptionForm `json:"answer_options" validate:"min=2,dive"`
}

type AnswerOptionForm struct {
	OptionText string `json:"option_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

// TotalLessons counts lessons across all sections
func (f *CourseForm) TotalLessons() int {
	total := 0
	for _, section := range f.Sections {
		total += len(section.Lessons)
	}
	return total
}

// Validate checks the form against its validation tags
func (f *CourseForm) Validate() error {
	return validate.Struct(f)
}

// FieldErrors flattens a validator error into the field->message map the
// API returns for validation failures. Non-validator errors map to a
// single "form" entry.
func FieldErrors(err error) map[string]string {
	errors := make(map[string]string)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["form"] = err.Error()
		return errors
	}

	for _, fe := range verrs {
		// Drop the leading struct name: "CourseForm.Sections[0].Title" -> "sections[0].title"
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		field = strings.ToLower(field)

		switch fe.Tag() {
		case "required":
			errors[field] = "This field is required!"
		case "min":
			errors[field] = fmt.Sprintf("Must have at least %s entries or characters!", fe.Param())
		case "gte":
			errors[field] = fmt.Sprintf("Must be at least %s!", fe.Param())
		case "lte":
			errors[field] = fmt.Sprintf("Must be at most %s!", fe.Param())
		case "oneof":
			errors[field] = fmt.Sprintf("Must be one of: %s!", fe.Param())
		default:
			errors[field] = "Invalid value!"
		}
	}

	return errors
}
