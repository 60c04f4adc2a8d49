package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	"github.com/gokatarajesh/trivia-api/internal/trivia/external"
)

var importFlags struct {
	amount     int
	difficulty string
	category   int
	baseURL    string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Seed the question bank from the Open Trivia DB",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

func init() {
	importCmd.Flags().IntVar(&importFlags.amount, "amount", 10, "number of questions to request (max 50)")
	importCmd.Flags().StringVar(&importFlags.difficulty, "difficulty", "", "easy, medium or hard")
	importCmd.Flags().IntVar(&importFlags.category, "category", 0, "Open Trivia DB category id")
	importCmd.Flags().StringVar(&importFlags.baseURL, "base-url", "", "override the Open Trivia DB endpoint")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, pool, logger, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	queries := postgres.New(pool)
	svc := trivia.NewService(
		repository.NewQuestionRepository(queries),
		repository.NewCategoryRepository(queries),
		trivia.NewCategoryCache(redisClient, cfg.Trivia.CategoryCacheTTL),
		logger,
		trivia.ServiceOptions{PageSize: cfg.Trivia.QuestionsPerPage},
	)

	importer := trivia.NewImporter(external.NewOpenTDBClient(importFlags.baseURL, nil), svc, logger)
	stats, err := importer.Run(ctx, external.FetchRequest{
		Amount:     importFlags.amount,
		Difficulty: importFlags.difficulty,
		Category:   importFlags.category,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "fetched %d, imported %d, skipped %d\n", stats.Fetched, stats.Imported, stats.Skipped)
	return nil
}
