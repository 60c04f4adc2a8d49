package trivia

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/trivia/external"
)

type questionSource interface {
	Fetch(ctx context.Context, req external.FetchRequest) ([]external.OpenTDBQuestion, error)
}

// ImportStats summarises one import run.
type ImportStats struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer seeds the question bank from an external source. Questions whose
// category has no local counterpart, whose difficulty is unknown, or whose
// text already exists are skipped.
type Importer struct {
	source questionSource
	svc    *Service
	logger zerolog.Logger
}

func NewImporter(source questionSource, svc *Service, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		svc:    svc,
		logger: logger.With().Str("component", "trivia_importer").Logger(),
	}
}

func (i *Importer) Run(ctx context.Context, req external.FetchRequest) (ImportStats, error) {
	var stats ImportStats

	fetched, err := i.source.Fetch(ctx, req)
	if err != nil {
		return stats, fmt.Errorf("fetch questions: %w", err)
	}
	stats.Fetched = len(fetched)

	categories, err := i.svc.Categories(ctx)
	if err != nil {
		return stats, err
	}
	existing, err := i.svc.loadQuestions(ctx)
	if err != nil {
		return stats, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, q := range existing {
		seen[normalizeText(q.Question)] = struct{}{}
	}

	for _, ext := range fetched {
		category, ok := matchCategory(categories, ext.Category)
		if !ok {
			i.logger.Debug().Str("category", ext.Category).Msg("no local category")
			stats.Skipped++
			continue
		}
		difficulty, ok := difficultyLevel(ext.Difficulty)
		if !ok {
			stats.Skipped++
			continue
		}
		key := normalizeText(ext.Question)
		if _, dup := seen[key]; dup {
			stats.Skipped++
			continue
		}

		text, answer := ext.Question, ext.CorrectAnswer
		if _, err := i.svc.Create(ctx, CreateQuestionRequest{
			Question:   &text,
			Answer:     &answer,
			Category:   &category,
			Difficulty: &difficulty,
		}); err != nil {
			return stats, err
		}
		seen[key] = struct{}{}
		stats.Imported++
	}

	i.logger.Info().
		Int("fetched", stats.Fetched).
		Int("imported", stats.Imported).
		Int("skipped", stats.Skipped).
		Msg("import finished")
	return stats, nil
}

// matchCategory maps an OpenTDB label such as "Science: Computers" or
// "Entertainment: Film" onto the local category whose type prefixes it.
func matchCategory(categories []Category, label string) (int, bool) {
	label = strings.ToLower(label)
	for _, c := range categories {
		if c.Type != "" && strings.HasPrefix(label, strings.ToLower(c.Type)) {
			return c.ID, true
		}
	}
	return 0, false
}

func difficultyLevel(d string) (int, bool) {
	switch strings.ToLower(d) {
	case "easy":
		return 1, true
	case "medium":
		return 2, true
	case "hard":
		return 3, true
	}
	return 0, false
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
