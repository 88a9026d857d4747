package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Question is a single multiple-choice quiz question.
type Question struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

// QuestionList is stored as a jsonb column.
type QuestionList []Question

// Value implements driver.Valuer.
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(q)
}

// Scan implements sql.Scanner.
func (q *QuestionList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*q = nil
		return nil
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("unsupported questions column type %T", src)
	}
}

// Quiz holds the question set for one chapter. At most one quiz exists per
// chapter; saving again replaces the questions in place.
type Quiz struct {
	ID        string       `db:"id" json:"id"`
	ChapterID string       `db:"chapter_id" json:"chapter_id"`
	Questions QuestionList `db:"questions" json:"questions"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// SaveQuizRequest creates or replaces the quiz for a chapter.
type SaveQuizRequest struct {
	Questions []Question `json:"questions" validate:"required,min=1,dive"`
}

// QuizPassThreshold is the fraction of correct answers required to pass.
const QuizPassThreshold = 0.5

// QuizResult is the latest attempt for one chapter. Retakes overwrite; no
// history is kept.
type QuizResult struct {
	Score          int       `db:"score" json:"score"`
	TotalQuestions int       `db:"total_questions" json:"total_questions"`
	Passed         bool      `db:"passed" json:"passed"`
	CompletedAt    time.Time `db:"completed_at" json:"completed_at"`
}

// RecordQuizAttemptRequest submits a finished quiz.
type RecordQuizAttemptRequest struct {
	ChapterID      string `json:"chapter_id" validate:"required"`
	Score          int    `json:"score" validate:"min=0"`
	TotalQuestions int    `json:"total_questions" validate:"required,min=1"`
}
