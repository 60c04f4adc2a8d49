package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migration commands understood by Migrate.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Migrate runs a goose command against conn. An empty dir selects the
// migrations embedded in the binary; otherwise dir is read from disk.
func Migrate(ctx context.Context, conn *sql.DB, command, dir string) error {
	var (
		fsys fs.FS = embedMigrations
		path       = "migrations"
	)
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("migration directory: %w", err)
		}
		fsys = nil
		path = dir
	}

	goose.SetBaseFS(fsys)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, conn, path)
	case CommandDown:
		return goose.DownContext(ctx, conn, path)
	case CommandStatus:
		return goose.StatusContext(ctx, conn, path)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
