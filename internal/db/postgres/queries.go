package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Question mirrors a row of the questions table.
type Question struct {
	ID         int32  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Category   int32  `db:"category"`
	Difficulty int32  `db:"difficulty"`
}

// Category mirrors a row of the categories table.
type Category struct {
	ID   int32  `db:"id"`
	Type string `db:"type"`
}

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var questionColumns = []string{"id", "question", "answer", "category", "difficulty"}

// Queries runs the service's SQL against a pgx connection or pool.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// ListQuestions returns every question ordered by id.
func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	query, args, err := psql.Select(questionColumns...).
		From("questions").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list questions: %w", err)
	}

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions, err := pgx.CollectRows(rows, pgx.RowToStructByName[Question])
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}
	return questions, nil
}

// InsertQuestion stores a question and returns it with its assigned id.
func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	query, args, err := psql.Insert("questions").
		Columns("question", "answer", "category", "difficulty").
		Values(arg.Question, arg.Answer, arg.Category, arg.Difficulty).
		Suffix("RETURNING id, question, answer, category, difficulty").
		ToSql()
	if err != nil {
		return Question{}, fmt.Errorf("build insert question: %w", err)
	}

	var out Question
	err = q.db.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Question,
		&out.Answer,
		&out.Category,
		&out.Difficulty,
	)
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return out, nil
}

// DeleteQuestion removes a question and reports how many rows went away.
func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	query, args, err := psql.Delete("questions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete question: %w", err)
	}

	tag, err := q.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete question %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// ListCategories returns every category ordered by id.
func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	query, args, err := psql.Select("id", "type").
		From("categories").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[Category])
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}
