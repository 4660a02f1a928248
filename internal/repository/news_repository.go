package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
	"github.com/ignatzorin/hvacsite/internal/repository/common"
)

const newsColumns = `id, title, slug, content, summary, published, published_at, created_at`

type NewsRepository struct {
	db *sqlx.DB
}

func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// List возвращает страницу новостей, свежие первыми.
func (r *NewsRepository) List(ctx context.Context, f dto.NewsFilters) ([]models.NewsArticleRow, int, error) {
	f = f.Normalize()

	var where common.Where
	if f.Search != "" {
		where.Add("(title ILIKE ? OR summary ILIKE ? OR content ILIKE ?)", common.Like(f.Search))
	}
	if f.PublishedOnly {
		where.AddRaw("published = TRUE")
	}

	rows, total, err := common.SelectPage[models.NewsArticleRow](ctx, r.db, newsColumns, "FROM news_articles", &where,
		"COALESCE(published_at, created_at) DESC, id ASC", common.Page{Limit: f.Limit, Offset: f.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("news repository: list %w", err)
	}
	return rows, total, nil
}

// GetBySlug возвращает статью по slug или nil.
func (r *NewsRepository) GetBySlug(ctx context.Context, slug string) (*models.NewsArticleRow, error) {
	row, err := common.GetOne[models.NewsArticleRow](ctx, r.db,
		`SELECT `+newsColumns+` FROM news_articles WHERE slug = $1`, slug)
	if err != nil {
		return nil, fmt.Errorf("news repository: get %w", err)
	}
	return row, nil
}

// ListLatest возвращает n последних опубликованных статей.
func (r *NewsRepository) ListLatest(ctx context.Context, n int) ([]models.NewsArticleRow, error) {
	rows := make([]models.NewsArticleRow, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+newsColumns+`
		FROM news_articles
		WHERE published = TRUE
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("news repository: latest %w", err)
	}
	return rows, nil
}
