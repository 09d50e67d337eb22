package course

import "gorm.io/gorm"

// Question types
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
)

// AssessmentQuestion represents a question within an assessment
type AssessmentQuestion struct {
	gorm.Model
	AssessmentID uint   `json:"assessment_id" gorm:"index;not null"`
	QuestionText string `json:"question_text" gorm:"type:text"`
	QuestionType string `json:"question_type" gorm:"default:'multiple_choice'"`
	Points       int    `json:"points" gorm:"default:1"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
}

// AssessmentAnswerOption represents an option for an assessment question.
// Every question carries at least two; enforced at form validation time,
// not at storage time.
type AssessmentAnswerOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}
