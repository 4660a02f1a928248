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

const jobColumns = `id, title, description, location, employment_type, is_active, requirements, created_at`

type JobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List возвращает страницу вакансий.
func (r *JobRepository) List(ctx context.Context, f dto.JobFilters) ([]models.JobOfferingRow, int, error) {
	f = f.Normalize()

	var where common.Where
	if f.Search != "" {
		where.Add("(title ILIKE ? OR description ILIKE ? OR location ILIKE ?)", common.Like(f.Search))
	}
	if f.EmploymentType != "" {
		where.Add("employment_type = ?", f.EmploymentType)
	}
	if f.ActiveOnly {
		where.AddRaw("is_active = TRUE")
	}

	rows, total, err := common.SelectPage[models.JobOfferingRow](ctx, r.db, jobColumns, "FROM job_offerings", &where,
		"created_at DESC, id ASC", common.Page{Limit: f.Limit, Offset: f.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("job repository: list %w", err)
	}
	return rows, total, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobOfferingRow, error) {
	row, err := common.GetOne[models.JobOfferingRow](ctx, r.db,
		`SELECT `+jobColumns+` FROM job_offerings WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("job repository: get %w", err)
	}
	return row, nil
}

// ListActive возвращает открытые вакансии без пагинации.
func (r *JobRepository) ListActive(ctx context.Context) ([]models.JobOfferingRow, error) {
	rows := make([]models.JobOfferingRow, 0)
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+jobColumns+` FROM job_offerings WHERE is_active = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("job repository: active %w", err)
	}
	return rows, nil
}
