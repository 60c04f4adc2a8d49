package trivia

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memoryStore is an in-process stand-in for the questions and categories
// tables.
type memoryStore struct {
	mu         sync.Mutex
	questions  []postgres.Question
	categories []postgres.Category
	nextID     int32

	listErr   error
	insertErr error
	deleteErr error
}

func newMemoryStore(categories []postgres.Category, questions ...postgres.Question) *memoryStore {
	s := &memoryStore{categories: categories, questions: questions}
	for _, q := range questions {
		s.nextID = max(s.nextID, q.ID)
	}
	return s
}

func (s *memoryStore) ListQuestions(_ context.Context) ([]postgres.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return slices.Clone(s.questions), nil
}

func (s *memoryStore) InsertQuestion(_ context.Context, arg postgres.InsertQuestionParams) (postgres.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return postgres.Question{}, s.insertErr
	}
	if !slices.ContainsFunc(s.categories, func(c postgres.Category) bool { return c.ID == arg.Category }) {
		return postgres.Question{}, errors.New("violates foreign key constraint")
	}
	s.nextID++
	q := postgres.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	before := len(s.questions)
	s.questions = slices.DeleteFunc(s.questions, func(q postgres.Question) bool { return q.ID == id })
	return int64(before - len(s.questions)), nil
}

func (s *memoryStore) ListCategories(_ context.Context) ([]postgres.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories), nil
}

type memoryCache struct {
	categories []Category
	gets       int
	sets       int
	getErr     error
}

func (c *memoryCache) Get(_ context.Context) ([]Category, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.categories, nil
}

func (c *memoryCache) Set(_ context.Context, categories []Category) error {
	c.sets++
	c.categories = categories
	return nil
}

func seedCategories() []postgres.Category {
	return []postgres.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
}

// numberedRows returns questions with ids 1..n spread over categories 1..3.
func numberedRows(n int) []postgres.Question {
	rows := make([]postgres.Question, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, postgres.Question{
			ID:         int32(i),
			Question:   "Question " + string(rune('A'+i-1)),
			Answer:     "answer",
			Category:   int32((i-1)%3 + 1),
			Difficulty: 1,
		})
	}
	return rows
}

func newTestService(store *memoryStore, cache CategoryCache, opts ServiceOptions) *Service {
	if cache == nil {
		cache = &memoryCache{}
	}
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		cache,
		zerolog.New(io.Discard),
		opts,
	)
}

func ptr[T any](v T) *T {
	return &v
}

func ids(qs []Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}
