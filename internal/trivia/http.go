package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the question, category and quiz endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

type pageResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	Categories      []Category `json:"categories"`
	CurrentCategory string     `json:"current_category"`
}

type searchResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

type quizResponse struct {
	Success      bool      `json:"success"`
	Question     *Question `json:"question"`
	QuizCategory string    `json:"quiz_category"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// HandleCategories handles GET /categories.
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.log(r.Context()).Error().Err(err).Msg("list categories failed")
		httperrors.RespondInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// HandleQuestions handles GET /questions?page=N and POST /questions.
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r, AllCategories)
	case http.MethodPost:
		h.createQuestion(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// HandleCategoryQuestions handles GET /categories/{id}/questions?page=N.
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	h.listQuestions(w, r, categoryID)
}

// HandleQuestion handles DELETE /questions/{id}.
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w, http.MethodDelete)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	result, err := h.svc.DeleteAndList(r.Context(), id, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(result))
}

// HandleSearch handles POST /questions/search?page=N.
func (h *HTTPHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Search(r.Context(), req.SearchTerm, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	questions := result.Questions
	if questions == nil {
		questions = []Question{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Success:         true,
		Questions:       questions,
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: result.CurrentCategory,
	})
}

// HandleQuizzes handles POST /quizzes.
func (h *HTTPHandler) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	result, err := h.svc.NextQuestion(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quizResponse{
		Success:      true,
		Question:     result.Question,
		QuizCategory: result.QuizCategory,
	})
}

func (h *HTTPHandler) listQuestions(w http.ResponseWriter, r *http.Request, categoryID int) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Questions(r.Context(), categoryID, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(result))
}

func (h *HTTPHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Question Saved",
		"id":      created.ID,
	})
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		h.log(r.Context()).Warn().Err(err).Str("reason", string(rej.Reason)).Msg("request rejected")
		httperrors.RespondUnprocessable(w)
	case errors.Is(err, ErrPageNotFound),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrEmptySearchTerm):
		httperrors.RespondNotFound(w)
	default:
		h.log(r.Context()).Error().Err(err).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

// log prefers the request-scoped logger installed by the server middleware.
func (h *HTTPHandler) log(ctx context.Context) *zerolog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return &logger
	}
	return &h.logger
}

func toPageResponse(p Page) pageResponse {
	questions := p.Questions
	if questions == nil {
		questions = []Question{}
	}
	categories := p.Categories
	if categories == nil {
		categories = []Category{}
	}
	return pageResponse{
		Success:         true,
		Questions:       questions,
		TotalQuestions:  p.TotalQuestions,
		Categories:      categories,
		CurrentCategory: p.CurrentCategory,
	}
}

// parsePage reads ?page, defaulting to 1. A non-integer value is answered
// with 400 and ok=false.
func parsePage(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		httperrors.RespondBadRequest(w)
		return 0, false
	}
	return page, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
