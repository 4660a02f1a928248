package service

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context, f dto.ProductFilters) ([]models.ProductRow, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.ProductRow), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductRow), args.Error(1)
}

func (m *mockProductRepo) ListFeatured(ctx context.Context, limit int) ([]models.ProductRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.ProductRow), args.Error(1)
}

func (m *mockProductRepo) ListRelated(ctx context.Context, id uuid.UUID, limit int) ([]models.ProductRow, error) {
	args := m.Called(ctx, id, limit)
	return args.Get(0).([]models.ProductRow), args.Error(1)
}

type mockJobRepo struct {
	mock.Mock
}

func (m *mockJobRepo) List(ctx context.Context, f dto.JobFilters) ([]models.JobOfferingRow, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.JobOfferingRow), args.Int(1), args.Error(2)
}

func (m *mockJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobOfferingRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobOfferingRow), args.Error(1)
}

func (m *mockJobRepo) ListActive(ctx context.Context) ([]models.JobOfferingRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.JobOfferingRow), args.Error(1)
}

type mockContactRepo struct {
	mock.Mock
}

func (m *mockContactRepo) Create(ctx context.Context, row *models.ContactMessageRow) error {
	args := m.Called(ctx, row)
	if args.Error(0) == nil {
		row.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockContactRepo) List(ctx context.Context, f dto.SubmissionFilters) ([]models.ContactMessageRow, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.ContactMessageRow), args.Int(1), args.Error(2)
}

func (m *mockContactRepo) ListAll(ctx context.Context) ([]models.ContactMessageRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ContactMessageRow), args.Error(1)
}

type mockApplicationRepo struct {
	mock.Mock
}

func (m *mockApplicationRepo) Create(ctx context.Context, row *models.JobApplicationRow) error {
	args := m.Called(ctx, row)
	if args.Error(0) == nil {
		row.ID = uuid.New()
		row.Status = models.SubmissionStatusNew
	}
	return args.Error(0)
}

func (m *mockApplicationRepo) List(ctx context.Context, f dto.SubmissionFilters) ([]models.JobApplicationRow, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.JobApplicationRow), args.Int(1), args.Error(2)
}

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) Create(ctx context.Context, row *models.QuoteRequestRow) error {
	args := m.Called(ctx, row)
	if args.Error(0) == nil {
		row.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockQuoteRepo) List(ctx context.Context, f dto.SubmissionFilters) ([]models.QuoteRequestRow, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.QuoteRequestRow), args.Int(1), args.Error(2)
}

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) Put(ctx context.Context, folder, name, contentType string, size int64, r io.Reader) (string, error) {
	args := m.Called(ctx, folder, name, contentType, size, r)
	return args.String(0), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []SubmissionEvent
}

func (p *recordingPublisher) PublishSubmission(evt SubmissionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) Events() []SubmissionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]SubmissionEvent(nil), p.events...)
}
