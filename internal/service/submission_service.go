package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
	"github.com/ignatzorin/hvacsite/internal/storage"
)

// Виды заявок.
const (
	KindContact     = "contact"
	KindQuote       = "quote"
	KindApplication = "application"
)

// resumeFolder каталог резюме в хранилище объектов.
const resumeFolder = "resumes"

// SubmissionEvent описывает новую заявку для уведомлений.
type SubmissionEvent struct {
	Kind      string    `json:"kind"`
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmissionPublisher получает события о созданных заявках. Не должен блокировать.
type SubmissionPublisher interface {
	PublishSubmission(evt SubmissionEvent)
}

type noopPublisher struct{}

func (noopPublisher) PublishSubmission(SubmissionEvent) {}

func publisherOrNoop(p SubmissionPublisher) SubmissionPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

type ContactMessageRepository interface {
	Create(ctx context.Context, m *models.ContactMessageRow) error
	List(ctx context.Context, f dto.SubmissionFilters) ([]models.ContactMessageRow, int, error)
	ListAll(ctx context.Context) ([]models.ContactMessageRow, error)
}

type QuoteRepository interface {
	Create(ctx context.Context, q *models.QuoteRequestRow) error
	List(ctx context.Context, f dto.SubmissionFilters) ([]models.QuoteRequestRow, int, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.JobApplicationRow) error
	List(ctx context.Context, f dto.SubmissionFilters) ([]models.JobApplicationRow, int, error)
}

// ContactService адаптер сообщений обратной связи.
type ContactService struct {
	repo   ContactMessageRepository
	events SubmissionPublisher
}

func NewContactService(repo ContactMessageRepository, events SubmissionPublisher) *ContactService {
	return &ContactService{repo: repo, events: publisherOrNoop(events)}
}

// Submit создаёт одно сообщение. Имя склеивается здесь и больше нигде.
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest) (*dto.ContactMessage, error) {
	row := &models.ContactMessageRow{
		Name:    CombineName(req.FirstName, req.LastName),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, gatewayError(err, "Failed to send message")
	}

	s.events.PublishSubmission(SubmissionEvent{
		Kind:      KindContact,
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Summary:   row.Subject,
		CreatedAt: row.CreatedAt,
	})

	m := toContactMessage(row)
	return &m, nil
}

func (s *ContactService) List(ctx context.Context, f dto.SubmissionFilters) (dto.ListResult[dto.ContactMessage], error) {
	f = f.Normalize()
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return dto.ListResult[dto.ContactMessage]{}, gatewayError(err, "Failed to load messages")
	}
	return listResult(rows, total, f.Pagination, toContactMessage), nil
}

// Export возвращает все сообщения для выгрузки.
func (s *ContactService) Export(ctx context.Context) ([]models.ContactMessageRow, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, gatewayError(err, "Failed to export messages")
	}
	return rows, nil
}

// QuoteService адаптер запросов коммерческих предложений.
type QuoteService struct {
	repo   QuoteRepository
	events SubmissionPublisher
}

func NewQuoteService(repo QuoteRepository, events SubmissionPublisher) *QuoteService {
	return &QuoteService{repo: repo, events: publisherOrNoop(events)}
}

func (s *QuoteService) Submit(ctx context.Context, req dto.QuoteRequestInput) (*dto.QuoteRequest, error) {
	row := &models.QuoteRequestRow{
		Name:            CombineName(req.FirstName, req.LastName),
		Email:           strings.TrimSpace(req.Email),
		CompanyName:     strings.TrimSpace(req.CompanyName),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		ProductCategory: strings.TrimSpace(req.ProductCategory),
		ProductType:     strings.TrimSpace(req.ProductType),
		Description:     strings.TrimSpace(req.Description),
		Timeline:        optional(strings.TrimSpace(req.Timeline)),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, gatewayError(err, "Failed to submit quote request")
	}

	s.events.PublishSubmission(SubmissionEvent{
		Kind:      KindQuote,
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Summary:   row.CompanyName + ": " + row.ProductCategory + " / " + row.ProductType,
		CreatedAt: row.CreatedAt,
	})

	q := toQuote(row)
	return &q, nil
}

func (s *QuoteService) List(ctx context.Context, f dto.SubmissionFilters) (dto.ListResult[dto.QuoteRequest], error) {
	f = f.Normalize()
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return dto.ListResult[dto.QuoteRequest]{}, gatewayError(err, "Failed to load quote requests")
	}
	return listResult(rows, total, f.Pagination, toQuote), nil
}

// ApplicationService адаптер откликов на вакансии.
type ApplicationService struct {
	repo   ApplicationRepository
	files  storage.ObjectStore
	events SubmissionPublisher
}

func NewApplicationService(repo ApplicationRepository, files storage.ObjectStore, events SubmissionPublisher) *ApplicationService {
	return &ApplicationService{repo: repo, files: files, events: publisherOrNoop(events)}
}

// Submit сначала загружает резюме, потом создаёт запись.
// Если загрузка не удалась, запись не создаётся и возвращается UploadError.
func (s *ApplicationService) Submit(ctx context.Context, req dto.ApplicationRequest, resume *dto.FileUpload) (*dto.JobApplication, error) {
	positionID, err := uuid.Parse(strings.TrimSpace(req.PositionID))
	if err != nil {
		return nil, apperror.Validation([]string{"positionId must be a valid id"})
	}

	var resumeURL *string
	if resume != nil {
		url, err := s.files.Put(ctx, resumeFolder, resume.Filename, resume.ContentType, resume.Size, resume.Body)
		if err != nil {
			return nil, apperror.Upload(err)
		}
		resumeURL = &url
	}

	row := &models.JobApplicationRow{
		PositionID:        positionID,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             strings.TrimSpace(req.Email),
		Phone:             optional(strings.TrimSpace(req.Phone)),
		CoverLetter:       optional(strings.TrimSpace(req.CoverLetter)),
		YearsOfExperience: BucketExperience(req.Experience),
		ResumeURL:         resumeURL,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, gatewayError(err, "Failed to submit application")
	}

	s.events.PublishSubmission(SubmissionEvent{
		Kind:      KindApplication,
		ID:        row.ID,
		Name:      CombineName(row.FirstName, row.LastName),
		Email:     row.Email,
		Summary:   "position " + positionID.String(),
		CreatedAt: row.CreatedAt,
	})

	a := toApplication(row)
	return &a, nil
}

func (s *ApplicationService) List(ctx context.Context, f dto.SubmissionFilters) (dto.ListResult[dto.JobApplication], error) {
	f = f.Normalize()
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return dto.ListResult[dto.JobApplication]{}, gatewayError(err, "Failed to load applications")
	}
	return listResult(rows, total, f.Pagination, toApplication), nil
}
