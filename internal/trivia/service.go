package trivia

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// Service loads questions and categories from storage and runs them through
// the Selector.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	selector   *Selector
	validate   *validator.Validate
	pageSize   int
	logger     zerolog.Logger
}

type ServiceOptions struct {
	PageSize int
	Selector *Selector
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, cache CategoryCache, logger zerolog.Logger, opts ServiceOptions) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	selector := opts.Selector
	if selector == nil {
		selector = NewSelector()
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		selector:   selector,
		validate:   newValidator(),
		pageSize:   pageSize,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Categories returns all categories, served from the cache when warm.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn().Err(err).Msg("category cache read failed")
	}

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, Category{ID: int(row.ID), Type: row.Type})
	}

	if err := s.cache.Set(ctx, categories); err != nil {
		s.logger.Warn().Err(err).Msg("category cache write failed")
	}
	return categories, nil
}

// Questions returns one page of questions, optionally limited to a category.
// An empty page, whether past the end or from an empty category, is
// ErrPageNotFound.
func (s *Service) Questions(ctx context.Context, categoryID, page int) (Page, error) {
	result, err := s.listPage(ctx, categoryID, page)
	if err != nil {
		return Page{}, err
	}
	if len(result.Questions) == 0 {
		return Page{}, ErrPageNotFound
	}
	return result, nil
}

func (s *Service) listPage(ctx context.Context, categoryID, page int) (Page, error) {
	all, err := s.loadQuestions(ctx)
	if err != nil {
		return Page{}, err
	}
	filtered := s.selector.FilterByCategory(all, categoryID)
	items, err := s.selector.Paginate(filtered, page, s.pageSize)
	if err != nil {
		return Page{}, err
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Questions:       items,
		TotalQuestions:  len(filtered),
		Categories:      categories,
		CurrentCategory: currentCategory(categories, categoryID),
	}, nil
}

// Search returns one page of questions whose text contains term. Unlike
// Questions, an empty page is a valid result.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	if term == "" {
		return Page{}, ErrEmptySearchTerm
	}
	all, err := s.loadQuestions(ctx)
	if err != nil {
		return Page{}, err
	}
	matches, err := s.selector.Search(all, term)
	if err != nil {
		return Page{}, err
	}
	items, err := s.selector.Paginate(matches, page, s.pageSize)
	if err != nil {
		return Page{}, err
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Questions:       items,
		TotalQuestions:  len(matches),
		Categories:      categories,
		CurrentCategory: currentCategory(categories, AllCategories),
	}, nil
}

// Create validates and stores a question.
func (s *Service) Create(ctx context.Context, req CreateQuestionRequest) (Question, error) {
	if err := s.checkRequired(req); err != nil {
		return Question{}, err
	}

	row, err := s.questions.Insert(ctx, postgres.InsertQuestionParams{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   int32(*req.Category),
		Difficulty: int32(*req.Difficulty),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("insert question failed")
		return Question{}, s.reject(storeRejected(err))
	}

	q := toDomain(row)
	s.logger.Info().Int("question_id", q.ID).Int("category", q.Category).Msg("question created")
	return q, nil
}

// Delete removes a question by id.
func (s *Service) Delete(ctx context.Context, id int) error {
	if id < 1 || id > math.MaxInt32 {
		return s.reject(&RejectionError{Reason: ReasonNotFound, Err: repository.ErrNotFound})
	}
	if err := s.questions.Delete(ctx, int32(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.reject(&RejectionError{Reason: ReasonNotFound, Err: err})
		}
		s.logger.Error().Err(err).Int("question_id", id).Msg("delete question failed")
		return s.reject(storeRejected(err))
	}
	s.logger.Info().Int("question_id", id).Msg("question deleted")
	return nil
}

// DeleteAndList removes a question and returns the requested page of what is
// left. Deleting the last question yields an empty page rather than an error.
func (s *Service) DeleteAndList(ctx context.Context, id, page int) (Page, error) {
	if page < 1 {
		return Page{}, ErrInvalidPage
	}
	if err := s.Delete(ctx, id); err != nil {
		return Page{}, err
	}
	result, err := s.listPage(ctx, AllCategories, page)
	if err != nil {
		return Page{}, s.reject(storeRejected(err))
	}
	return result, nil
}

// NextQuestion picks a question the client has not seen yet from the quiz
// category (or from every category for id 0). A nil Question in the result
// means the session is over.
func (s *Service) NextQuestion(ctx context.Context, req QuizRequest) (QuizResult, error) {
	if err := s.checkRequired(req); err != nil {
		return QuizResult{}, err
	}

	all, err := s.loadQuestions(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("quiz pool lookup failed")
		return QuizResult{}, s.reject(storeRejected(err))
	}
	pool := s.selector.FilterByCategory(all, *req.QuizCategory.ID)

	result := QuizResult{QuizCategory: req.QuizCategory.Type}
	next, ok := s.selector.PickNext(pool, req.PreviousQuestions)
	if !ok {
		quizPicks.WithLabelValues("exhausted").Inc()
		return result, nil
	}
	quizPicks.WithLabelValues("served").Inc()
	result.Question = next
	return result, nil
}

func (s *Service) loadQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func (s *Service) checkRequired(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return s.reject(missingField(fieldPath(fe)))
		}
		return s.reject(outOfRange(fieldPath(fe)))
	}
	return s.reject(missingField(""))
}

// fieldPath drops the struct name from the namespace: "quiz_category.id".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func (s *Service) reject(err error) error {
	var rej *RejectionError
	if errors.As(err, &rej) {
		writeRejections.WithLabelValues(string(rej.Reason)).Inc()
	}
	return err
}

func currentCategory(categories []Category, categoryID int) string {
	for _, c := range categories {
		if categoryID == AllCategories || c.ID == categoryID {
			return c.Type
		}
	}
	return ""
}

func toDomain(row postgres.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}
