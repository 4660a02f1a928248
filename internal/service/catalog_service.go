package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
)

// Размеры подборок каталога.
const (
	FeaturedProductsLimit = 8
	RelatedProductsLimit  = 4
)

type ProductRepository interface {
	List(ctx context.Context, f dto.ProductFilters) ([]models.ProductRow, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductRow, error)
	ListFeatured(ctx context.Context, limit int) ([]models.ProductRow, error)
	ListRelated(ctx context.Context, id uuid.UUID, limit int) ([]models.ProductRow, error)
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.CategoryRow, error)
	ListRootCategories(ctx context.Context) ([]models.CategoryRow, error)
	ListSubcategories(ctx context.Context, parentID uuid.UUID) ([]models.CategoryRow, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.CategoryRow, error)
}

// ProductService адаптер товаров.
type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List возвращает страницу товаров. Страница за последней даёт пустой список.
func (s *ProductService) List(ctx context.Context, f dto.ProductFilters) (dto.ListResult[dto.Product], error) {
	f = f.Normalize()
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return dto.ListResult[dto.Product]{}, gatewayError(err, "Failed to load products")
	}
	return listResult(rows, total, f.Pagination, toProduct), nil
}

// Get возвращает товар или nil, если его нет.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*dto.Product, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, gatewayError(err, "Failed to load product")
	}
	if row == nil {
		return nil, nil
	}
	p := toProduct(row)
	return &p, nil
}

func (s *ProductService) Featured(ctx context.Context) ([]dto.Product, error) {
	rows, err := s.repo.ListFeatured(ctx, FeaturedProductsLimit)
	if err != nil {
		return nil, gatewayError(err, "Failed to load featured products")
	}
	return mapRows(rows, toProduct), nil
}

// Related возвращает товары той же категории, кроме самого товара.
func (s *ProductService) Related(ctx context.Context, id uuid.UUID) ([]dto.Product, error) {
	rows, err := s.repo.ListRelated(ctx, id, RelatedProductsLimit)
	if err != nil {
		return nil, gatewayError(err, "Failed to load related products")
	}
	return mapRows(rows, toProduct), nil
}

// Search ищет товары по подстроке в названии и описании.
func (s *ProductService) Search(ctx context.Context, term string, p dto.Pagination) (dto.ListResult[dto.Product], error) {
	return s.List(ctx, dto.ProductFilters{Search: term, Pagination: p})
}

// Images возвращает известную картинку товара и догадки по его названию.
func (s *ProductService) Images(ctx context.Context, id uuid.UUID) ([]string, error) {
	p, err := s.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	images := make([]string, 0, 1)
	if p.ImageURL != "" {
		images = append(images, p.ImageURL)
	}
	return append(images, ImageCandidates(p.Name)...), nil
}

// CategoryService адаптер категорий.
type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]dto.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, gatewayError(err, "Failed to load categories")
	}
	return mapRows(rows, toCategory), nil
}

// Top возвращает категории верхнего уровня.
func (s *CategoryService) Top(ctx context.Context) ([]dto.Category, error) {
	rows, err := s.repo.ListRootCategories(ctx)
	if err != nil {
		return nil, gatewayError(err, "Failed to load categories")
	}
	return mapRows(rows, toCategory), nil
}

func (s *CategoryService) Children(ctx context.Context, parentID uuid.UUID) ([]dto.Category, error) {
	rows, err := s.repo.ListSubcategories(ctx, parentID)
	if err != nil {
		return nil, gatewayError(err, "Failed to load categories")
	}
	return mapRows(rows, toCategory), nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*dto.Category, error) {
	row, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, gatewayError(err, "Failed to load category")
	}
	if row == nil {
		return nil, nil
	}
	c := toCategory(row)
	return &c, nil
}
