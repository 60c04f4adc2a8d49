package main

import (
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect schema migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{db.CommandUp, db.CommandDown, db.CommandStatus},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "", "read migrations from this directory instead of the embedded set")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, pool, logger, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	command := args[0]
	if err := db.Migrate(ctx, sqlDB, command, migrationsDir); err != nil {
		return err
	}
	logger.Info().Str("command", command).Msg("migration command finished")
	return nil
}
