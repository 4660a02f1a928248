package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/hvacsite/internal/models"
	"github.com/ignatzorin/hvacsite/internal/repository/common"
)

const categoryColumns = `id, name, description, image_url, parent_id, sort_order, created_at`

// CategoryRepository читает категории каталога.
type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListCategories возвращает все категории.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]models.CategoryRow, error) {
	categories := make([]models.CategoryRow, 0)
	err := r.db.SelectContext(ctx, &categories, `
		SELECT `+categoryColumns+`
		FROM categories ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("category repository: list %w", err)
	}
	return categories, nil
}

// ListRootCategories возвращает только корневые категории (без parent_id).
func (r *CategoryRepository) ListRootCategories(ctx context.Context) ([]models.CategoryRow, error) {
	categories := make([]models.CategoryRow, 0)
	err := r.db.SelectContext(ctx, &categories, `
		SELECT `+categoryColumns+`
		FROM categories WHERE parent_id IS NULL ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("category repository: list roots %w", err)
	}
	return categories, nil
}

// ListSubcategories возвращает подкатегории для указанной категории.
func (r *CategoryRepository) ListSubcategories(ctx context.Context, parentID uuid.UUID) ([]models.CategoryRow, error) {
	categories := make([]models.CategoryRow, 0)
	err := r.db.SelectContext(ctx, &categories, `
		SELECT `+categoryColumns+`
		FROM categories WHERE parent_id = $1 ORDER BY sort_order, name
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("category repository: list children %w", err)
	}
	return categories, nil
}

// GetCategoryByID возвращает категорию или nil.
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.CategoryRow, error) {
	row, err := common.GetOne[models.CategoryRow](ctx, r.db,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("category repository: get %w", err)
	}
	return row, nil
}
