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

const projectColumns = `id, title, photo_url, location, items_supplied, brands, created_at`

// ProjectRepository читает реализованные объекты.
type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List возвращает страницу объектов.
func (r *ProjectRepository) List(ctx context.Context, f dto.ProjectFilters) ([]models.ProjectRow, int, error) {
	f = f.Normalize()

	var where common.Where
	if f.Search != "" {
		where.Add("(title ILIKE ? OR location ILIKE ?)", common.Like(f.Search))
	}
	if f.Brand != "" {
		where.Add("? = ANY(brands)", f.Brand)
	}

	rows, total, err := common.SelectPage[models.ProjectRow](ctx, r.db, projectColumns, "FROM projects", &where,
		"created_at DESC, id ASC", common.Page{Limit: f.Limit, Offset: f.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("project repository: list %w", err)
	}
	return rows, total, nil
}

// GetByID возвращает объект или nil.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectRow, error) {
	row, err := common.GetOne[models.ProjectRow](ctx, r.db,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("project repository: get %w", err)
	}
	return row, nil
}
