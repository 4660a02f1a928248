package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
	"github.com/ignatzorin/hvacsite/internal/repository/common"
)

const (
	contactColumns     = `id, name, email, subject, message, is_read, created_at`
	applicationColumns = `id, position_id, first_name, last_name, email, phone, cover_letter,
		years_of_experience, resume_url, status, created_at`
	quoteColumns = `id, name, email, company_name, phone_number, product_category, product_type,
		description, timeline, status, created_at`
)

// ContactMessageRepository хранит сообщения формы обратной связи.
type ContactMessageRepository struct {
	db *sqlx.DB
}

func NewContactMessageRepository(db *sqlx.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

// Create сохраняет сообщение и заполняет id, is_read и created_at.
func (r *ContactMessageRepository) Create(ctx context.Context, m *models.ContactMessageRow) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at
	`, m.Name, m.Email, m.Subject, m.Message).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("contact repository: create %w", err)
	}
	return nil
}

// List возвращает страницу сообщений для администратора.
func (r *ContactMessageRepository) List(ctx context.Context, f dto.SubmissionFilters) ([]models.ContactMessageRow, int, error) {
	f = f.Normalize()

	var where common.Where
	if f.Search != "" {
		where.Add("(name ILIKE ? OR email ILIKE ? OR subject ILIKE ?)", common.Like(f.Search))
	}
	if f.UnreadOnly {
		where.AddRaw("is_read = FALSE")
	}

	rows, total, err := common.SelectPage[models.ContactMessageRow](ctx, r.db, contactColumns, "FROM contact_messages", &where,
		"created_at DESC, id ASC", common.Page{Limit: f.Limit, Offset: f.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("contact repository: list %w", err)
	}
	return rows, total, nil
}

// ListAll возвращает все сообщения для выгрузки в CSV.
func (r *ContactMessageRepository) ListAll(ctx context.Context) ([]models.ContactMessageRow, error) {
	rows := make([]models.ContactMessageRow, 0)
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+contactColumns+` FROM contact_messages ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("contact repository: list all %w", err)
	}
	return rows, nil
}

// ApplicationRepository хранит отклики на вакансии.
type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *models.JobApplicationRow) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO job_applications
			(position_id, first_name, last_name, email, phone, cover_letter, years_of_experience, resume_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at
	`, a.PositionID, a.FirstName, a.LastName, a.Email, a.Phone, a.CoverLetter, a.YearsOfExperience, a.ResumeURL).
		Scan(&a.ID, &a.Status, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("application repository: create %w", err)
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, f dto.SubmissionFilters) ([]models.JobApplicationRow, int, error) {
	f = f.Normalize()

	var where common.Where
	if f.Search != "" {
		where.Add("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)", common.Like(f.Search))
	}
	if f.UnreadOnly {
		where.Add("status = ?", models.SubmissionStatusNew)
	}

	rows, total, err := common.SelectPage[models.JobApplicationRow](ctx, r.db, applicationColumns, "FROM job_applications", &where,
		"created_at DESC, id ASC", common.Page{Limit: f.Limit, Offset: f.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("application repository: list %w", err)
	}
	return rows, total, nil
}

// QuoteRepository хранит запросы коммерческих предложений.
type QuoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *models.QuoteRequestRow) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO quote_requests
			(name, email, company_name, phone_number, product_category, product_type, description, timeline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at
	`, q.Name, q.Email, q.CompanyName, q.PhoneNumber, q.ProductCategory, q.ProductType, q.Description, q.Timeline).
		Scan(&q.ID, &q.Status, &q.CreatedAt)
	if err != nil {
		return fmt.Errorf("quote repository: create %w", err)
	}
	return nil
}

func (r *QuoteRepository) List(ctx context.Context, f dto.SubmissionFilters) ([]models.QuoteRequestRow, int, error) {
	f = f.Normalize()

	var where common.Where
	if f.Search != "" {
		where.Add("(name ILIKE ? OR company_name ILIKE ? OR email ILIKE ?)", common.Like(f.Search))
	}
	if f.UnreadOnly {
		where.Add("status = ?", models.SubmissionStatusNew)
	}

	rows, total, err := common.SelectPage[models.QuoteRequestRow](ctx, r.db, quoteColumns, "FROM quote_requests", &where,
		"created_at DESC, id ASC", common.Page{Limit: f.Limit, Offset: f.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("quote repository: list %w", err)
	}
	return rows, total, nil
}
