package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
)

type JobRepository interface {
	List(ctx context.Context, f dto.JobFilters) ([]models.JobOfferingRow, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobOfferingRow, error)
	ListActive(ctx context.Context) ([]models.JobOfferingRow, error)
}

type NewsRepository interface {
	List(ctx context.Context, f dto.NewsFilters) ([]models.NewsArticleRow, int, error)
	GetBySlug(ctx context.Context, slug string) (*models.NewsArticleRow, error)
	ListLatest(ctx context.Context, n int) ([]models.NewsArticleRow, error)
}

type ProjectRepository interface {
	List(ctx context.Context, f dto.ProjectFilters) ([]models.ProjectRow, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectRow, error)
}

// JobService адаптер вакансий. Город и страна вычисляются здесь один раз.
type JobService struct {
	repo JobRepository
}

func NewJobService(repo JobRepository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) List(ctx context.Context, f dto.JobFilters) (dto.ListResult[dto.JobOffering], error) {
	f = f.Normalize()
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return dto.ListResult[dto.JobOffering]{}, gatewayError(err, "Failed to load jobs")
	}
	return listResult(rows, total, f.Pagination, toJob), nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*dto.JobOffering, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, gatewayError(err, "Failed to load job")
	}
	if row == nil {
		return nil, nil
	}
	j := toJob(row)
	return &j, nil
}

// Active возвращает открытые вакансии.
func (s *JobService) Active(ctx context.Context) ([]dto.JobOffering, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, gatewayError(err, "Failed to load jobs")
	}
	return mapRows(rows, toJob), nil
}

// NewsService адаптер новостей.
type NewsService struct {
	repo NewsRepository
}

func NewNewsService(repo NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

func (s *NewsService) List(ctx context.Context, f dto.NewsFilters) (dto.ListResult[dto.NewsArticle], error) {
	f = f.Normalize()
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return dto.ListResult[dto.NewsArticle]{}, gatewayError(err, "Failed to load news")
	}
	return listResult(rows, total, f.Pagination, toNews), nil
}

// GetBySlug возвращает статью или nil.
func (s *NewsService) GetBySlug(ctx context.Context, slug string) (*dto.NewsArticle, error) {
	row, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, gatewayError(err, "Failed to load article")
	}
	if row == nil {
		return nil, nil
	}
	n := toNews(row)
	return &n, nil
}

func (s *NewsService) Latest(ctx context.Context, n int) ([]dto.NewsArticle, error) {
	if n < 1 {
		n = 1
	}
	rows, err := s.repo.ListLatest(ctx, n)
	if err != nil {
		return nil, gatewayError(err, "Failed to load news")
	}
	return mapRows(rows, toNews), nil
}

// ProjectService адаптер реализованных объектов.
type ProjectService struct {
	repo ProjectRepository
}

func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context, f dto.ProjectFilters) (dto.ListResult[dto.Project], error) {
	f = f.Normalize()
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return dto.ListResult[dto.Project]{}, gatewayError(err, "Failed to load projects")
	}
	return listResult(rows, total, f.Pagination, toProject), nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*dto.Project, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, gatewayError(err, "Failed to load project")
	}
	if row == nil {
		return nil, nil
	}
	p := toProject(row)
	return &p, nil
}
