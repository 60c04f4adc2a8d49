package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]postgres.Category, error)
}

// CategoryRepository exposes the read-only category table.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]postgres.Category, error) {
	return r.store.ListCategories(ctx)
}
