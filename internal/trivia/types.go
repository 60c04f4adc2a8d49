package trivia

import (
	"errors"
	"fmt"
)

// DefaultPageSize is the number of questions returned per page.
const DefaultPageSize = 10

// AllCategories is the category id meaning "no category filter".
const AllCategories = 0

// Question is the payload delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions; seeded by migrations.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Page is one page of questions plus listing metadata.
type Page struct {
	Questions       []Question
	TotalQuestions  int
	Categories      []Category
	CurrentCategory string
}

// CreateQuestionRequest carries the fields of a new question. Pointer fields
// distinguish an absent field from a zero value.
type CreateQuestionRequest struct {
	Question   *string `json:"question" validate:"required"`
	Answer     *string `json:"answer" validate:"required"`
	Category   *int    `json:"category" validate:"required,min=1,max=2147483647"`
	Difficulty *int    `json:"difficulty" validate:"required,min=1,max=2147483647"`
}

// QuizCategory identifies the category a quiz is played in. ID 0 means any.
type QuizCategory struct {
	ID   *int   `json:"id" validate:"required"`
	Type string `json:"type"`
}

// QuizRequest asks for the next question of a quiz session. The client keeps
// the session: PreviousQuestions lists every id it has already been shown.
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
	PreviousQuestions []int         `json:"previous_questions" validate:"required"`
}

// QuizResult holds the next question, or nil once the pool is exhausted.
type QuizResult struct {
	Question     *Question
	QuizCategory string
}

var (
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrEmptySearchTerm = errors.New("search term is required")
	ErrPageNotFound    = errors.New("page not found")
)

// RejectReason is the closed set of reasons a write can be refused for.
type RejectReason string

const (
	ReasonMissingField  RejectReason = "missing_field"
	ReasonNotFound      RejectReason = "not_found"
	ReasonStoreRejected RejectReason = "store_rejected"
)

// RejectionError is returned by Create, Delete and NextQuestion.
type RejectionError struct {
	Reason RejectReason
	Field  string
	Err    error
}

func (e *RejectionError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Reason, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	default:
		return string(e.Reason)
	}
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

func missingField(field string) error {
	return &RejectionError{Reason: ReasonMissingField, Field: field}
}

func outOfRange(field string) error {
	return &RejectionError{Reason: ReasonStoreRejected, Field: field, Err: errOutOfRange}
}

var errOutOfRange = errors.New("value outside the storable range")

func storeRejected(err error) error {
	return &RejectionError{Reason: ReasonStoreRejected, Err: err}
}
