package repository

import (
	"context"
	"errors"

	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
)

// ErrNotFound is returned when a write targets a row that does not exist.
var ErrNotFound = errors.New("record not found")

type questionStore interface {
	ListQuestions(ctx context.Context) ([]postgres.Question, error)
	InsertQuestion(ctx context.Context, arg postgres.InsertQuestionParams) (postgres.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository wraps the question queries.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListAll returns every stored question ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]postgres.Question, error) {
	return r.store.ListQuestions(ctx)
}

// Insert stores a new question.
func (r *QuestionRepository) Insert(ctx context.Context, params postgres.InsertQuestionParams) (postgres.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes a question, returning ErrNotFound when no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	affected, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
