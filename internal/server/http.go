package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Dependency is a named upstream checked by /v1/ping.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewHTTPServer wires the trivia routes plus health, ping and metrics.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps []Dependency, triviaHandler *trivia.HTTPHandler) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, deps, triviaHandler),
	}
}

// NewHandler builds the routed handler with middleware applied.
func NewHandler(cfg *config.App, logger zerolog.Logger, deps []Dependency, triviaHandler *trivia.HTTPHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		for _, dep := range deps {
			if err := dep.Ping(r.Context()); err != nil {
				logger.Error().Err(err).Str("dependency", dep.Name).Msg("dependency ping failed")
				http.Error(w, "upstream error", http.StatusBadGateway)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if triviaHandler != nil {
		mux.HandleFunc("/categories", triviaHandler.HandleCategories)
		mux.HandleFunc("/categories/{id}/questions", triviaHandler.HandleCategoryQuestions)
		mux.HandleFunc("/questions", triviaHandler.HandleQuestions)
		mux.HandleFunc("/questions/search", triviaHandler.HandleSearch)
		mux.HandleFunc("/questions/{id}", triviaHandler.HandleQuestion)
		mux.HandleFunc("/quizzes", triviaHandler.HandleQuizzes)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	var handler http.Handler = mux
	handler = instrument(handler)
	handler = withCORS(cfg.CORS, handler)
	handler = withRequestLogging(logger, handler)
	handler = withRecovery(logger, handler)
	return handler
}
