package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
	"github.com/ignatzorin/hvacsite/internal/repository/common"
)

const (
	productColumns = `p.id, p.name, p.description, p.category_id, c.name AS category_name,
		p.image_url, p.features, p.is_featured, p.created_at`
	productFrom = `FROM products p LEFT JOIN categories c ON c.id = p.category_id`
)

// ProductRepository читает товары из Gateway.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository создаёт экземпляр репозитория.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List возвращает страницу товаров по фильтрам.
func (r *ProductRepository) List(ctx context.Context, f dto.ProductFilters) ([]models.ProductRow, int, error) {
	f = f.Normalize()

	var where common.Where
	if f.Search != "" {
		where.Add("(p.name ILIKE ? OR p.description ILIKE ?)", common.Like(f.Search))
	}
	if f.CategoryID != "" {
		where.Add("p.category_id::text = ?", f.CategoryID)
	}
	if f.Featured {
		where.AddRaw("p.is_featured = TRUE")
	}

	rows, total, err := common.SelectPage[models.ProductRow](ctx, r.db, productColumns, productFrom, &where,
		"p.name ASC, p.id ASC", common.Page{Limit: f.Limit, Offset: f.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("product repository: list %w", err)
	}
	return rows, total, nil
}

// GetByID возвращает товар или nil, если его нет.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductRow, error) {
	row, err := common.GetOne[models.ProductRow](ctx, r.db,
		"SELECT "+productColumns+" "+productFrom+" WHERE p.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("product repository: get %w", err)
	}
	return row, nil
}

// ListFeatured возвращает товары для главной страницы.
func (r *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]models.ProductRow, error) {
	rows := make([]models.ProductRow, 0)
	err := r.db.SelectContext(ctx, &rows,
		"SELECT "+productColumns+" "+productFrom+" WHERE p.is_featured = TRUE ORDER BY p.created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("product repository: featured %w", err)
	}
	return rows, nil
}

// ListRelated возвращает другие товары той же категории.
func (r *ProductRepository) ListRelated(ctx context.Context, id uuid.UUID, limit int) ([]models.ProductRow, error) {
	rows := make([]models.ProductRow, 0)
	err := r.db.SelectContext(ctx, &rows, "SELECT "+productColumns+" "+productFrom+`
		WHERE p.id <> $1
		  AND p.category_id IS NOT NULL
		  AND p.category_id = (SELECT category_id FROM products WHERE id = $1)
		ORDER BY p.is_featured DESC, p.name ASC
		LIMIT $2`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("product repository: related %w", err)
	}
	return rows, nil
}
