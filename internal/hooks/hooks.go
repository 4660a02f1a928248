package hooks

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/query"
)

type ProductAdapter interface {
	List(ctx context.Context, f dto.ProductFilters) (dto.ListResult[dto.Product], error)
	Get(ctx context.Context, id uuid.UUID) (*dto.Product, error)
	Featured(ctx context.Context) ([]dto.Product, error)
	Related(ctx context.Context, id uuid.UUID) ([]dto.Product, error)
	Search(ctx context.Context, term string, p dto.Pagination) (dto.ListResult[dto.Product], error)
	Images(ctx context.Context, id uuid.UUID) ([]string, error)
}

type CategoryAdapter interface {
	List(ctx context.Context) ([]dto.Category, error)
	Top(ctx context.Context) ([]dto.Category, error)
	Children(ctx context.Context, parentID uuid.UUID) ([]dto.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.Category, error)
}

type JobAdapter interface {
	List(ctx context.Context, f dto.JobFilters) (dto.ListResult[dto.JobOffering], error)
	Get(ctx context.Context, id uuid.UUID) (*dto.JobOffering, error)
	Active(ctx context.Context) ([]dto.JobOffering, error)
}

type NewsAdapter interface {
	List(ctx context.Context, f dto.NewsFilters) (dto.ListResult[dto.NewsArticle], error)
	GetBySlug(ctx context.Context, slug string) (*dto.NewsArticle, error)
	Latest(ctx context.Context, n int) ([]dto.NewsArticle, error)
}

type ProjectAdapter interface {
	List(ctx context.Context, f dto.ProjectFilters) (dto.ListResult[dto.Project], error)
	Get(ctx context.Context, id uuid.UUID) (*dto.Project, error)
}

// Products запросы каталога товаров через общий кэш.
type Products struct {
	client  *query.Client
	adapter ProductAdapter
}

func NewProducts(c *query.Client, a ProductAdapter) *Products {
	return &Products{client: c, adapter: a}
}

func (h *Products) List(ctx context.Context, f dto.ProductFilters) query.Result[dto.ListResult[dto.Product]] {
	f = f.Normalize()
	return query.Fetch(ctx, h.client, ProductKeys.List(f), func(ctx context.Context) (dto.ListResult[dto.Product], error) {
		return h.adapter.List(ctx, f)
	})
}

// Detail не выполняет запрос для пустого id.
func (h *Products) Detail(ctx context.Context, id string) query.Result[*dto.Product] {
	id = strings.TrimSpace(id)
	return query.Fetch(ctx, h.client, ProductKeys.Detail(id), func(ctx context.Context) (*dto.Product, error) {
		parsed, ok := parseID(id)
		if !ok {
			return nil, nil
		}
		return h.adapter.Get(ctx, parsed)
	}, query.Enabled(hasID(id)))
}

func (h *Products) Featured(ctx context.Context) query.Result[[]dto.Product] {
	return query.Fetch(ctx, h.client, ProductKeys.Featured(), h.adapter.Featured)
}

func (h *Products) Related(ctx context.Context, id string) query.Result[[]dto.Product] {
	id = strings.TrimSpace(id)
	return query.Fetch(ctx, h.client, ProductKeys.Related(id), func(ctx context.Context) ([]dto.Product, error) {
		parsed, ok := parseID(id)
		if !ok {
			return []dto.Product{}, nil
		}
		return h.adapter.Related(ctx, parsed)
	}, query.Enabled(hasID(id)))
}

// Search выполняется только для строки от MinSearchLength символов.
func (h *Products) Search(ctx context.Context, term string, p dto.Pagination) query.Result[dto.ListResult[dto.Product]] {
	term = strings.TrimSpace(term)
	return query.Fetch(ctx, h.client, ProductKeys.Search(term, p), func(ctx context.Context) (dto.ListResult[dto.Product], error) {
		return h.adapter.Search(ctx, term, p)
	}, query.Enabled(canSearch(term)))
}

func (h *Products) Images(ctx context.Context, id string) query.Result[[]string] {
	id = strings.TrimSpace(id)
	return query.Fetch(ctx, h.client, ProductKeys.Images(id), func(ctx context.Context) ([]string, error) {
		parsed, ok := parseID(id)
		if !ok {
			return nil, nil
		}
		return h.adapter.Images(ctx, parsed)
	}, query.Enabled(hasID(id)))
}

// Infinite возвращает ленту товаров, страницы которой хранятся в кэше.
func (h *Products) Infinite(f dto.ProductFilters) *query.Infinite[dto.Product] {
	f = f.Normalize()
	return query.NewInfinite(h.client, ProductKeys.Infinite(f), func(ctx context.Context, page int) (query.Page[dto.Product], error) {
		pf := f
		pf.Page = page
		res, err := h.adapter.List(ctx, pf)
		if err != nil {
			return query.Page[dto.Product]{}, err
		}
		return query.Page[dto.Product]{Items: res.Data, Total: res.Total, Limit: res.Limit}, nil
	})
}

// LoadUpTo догружает ленту до страницы n или до её конца.
func LoadUpTo[T any](ctx context.Context, q *query.Infinite[T], n int) query.InfiniteResult[T] {
	res := q.Current()
	for res.PageCount() < n && res.HasMore {
		res = q.Next(ctx)
		if res.Status != query.StatusSuccess {
			break
		}
	}
	return res
}

// Categories запросы категорий.
type Categories struct {
	client  *query.Client
	adapter CategoryAdapter
}

func NewCategories(c *query.Client, a CategoryAdapter) *Categories {
	return &Categories{client: c, adapter: a}
}

func (h *Categories) List(ctx context.Context) query.Result[[]dto.Category] {
	return query.Fetch(ctx, h.client, CategoryKeys.List(), h.adapter.List)
}

func (h *Categories) Top(ctx context.Context) query.Result[[]dto.Category] {
	return query.Fetch(ctx, h.client, CategoryKeys.Top(), h.adapter.Top)
}

func (h *Categories) Detail(ctx context.Context, id string) query.Result[*dto.Category] {
	id = strings.TrimSpace(id)
	return query.Fetch(ctx, h.client, CategoryKeys.Detail(id), func(ctx context.Context) (*dto.Category, error) {
		parsed, ok := parseID(id)
		if !ok {
			return nil, nil
		}
		return h.adapter.Get(ctx, parsed)
	}, query.Enabled(hasID(id)))
}

func (h *Categories) Children(ctx context.Context, parentID string) query.Result[[]dto.Category] {
	parentID = strings.TrimSpace(parentID)
	return query.Fetch(ctx, h.client, CategoryKeys.Children(parentID), func(ctx context.Context) ([]dto.Category, error) {
		parsed, ok := parseID(parentID)
		if !ok {
			return []dto.Category{}, nil
		}
		return h.adapter.Children(ctx, parsed)
	}, query.Enabled(hasID(parentID)))
}

// Jobs запросы вакансий.
type Jobs struct {
	client  *query.Client
	adapter JobAdapter
}

func NewJobs(c *query.Client, a JobAdapter) *Jobs {
	return &Jobs{client: c, adapter: a}
}

func (h *Jobs) List(ctx context.Context, f dto.JobFilters) query.Result[dto.ListResult[dto.JobOffering]] {
	f = f.Normalize()
	return query.Fetch(ctx, h.client, JobKeys.List(f), func(ctx context.Context) (dto.ListResult[dto.JobOffering], error) {
		return h.adapter.List(ctx, f)
	})
}

func (h *Jobs) Detail(ctx context.Context, id string) query.Result[*dto.JobOffering] {
	id = strings.TrimSpace(id)
	return query.Fetch(ctx, h.client, JobKeys.Detail(id), func(ctx context.Context) (*dto.JobOffering, error) {
		parsed, ok := parseID(id)
		if !ok {
			return nil, nil
		}
		return h.adapter.Get(ctx, parsed)
	}, query.Enabled(hasID(id)))
}

func (h *Jobs) Active(ctx context.Context) query.Result[[]dto.JobOffering] {
	return query.Fetch(ctx, h.client, JobKeys.Active(), h.adapter.Active)
}

// News запросы новостей.
type News struct {
	client  *query.Client
	adapter NewsAdapter
}

func NewNews(c *query.Client, a NewsAdapter) *News {
	return &News{client: c, adapter: a}
}

func (h *News) List(ctx context.Context, f dto.NewsFilters) query.Result[dto.ListResult[dto.NewsArticle]] {
	f = f.Normalize()
	return query.Fetch(ctx, h.client, NewsKeys.List(f), func(ctx context.Context) (dto.ListResult[dto.NewsArticle], error) {
		return h.adapter.List(ctx, f)
	})
}

func (h *News) Detail(ctx context.Context, slug string) query.Result[*dto.NewsArticle] {
	slug = strings.TrimSpace(slug)
	return query.Fetch(ctx, h.client, NewsKeys.Detail(slug), func(ctx context.Context) (*dto.NewsArticle, error) {
		return h.adapter.GetBySlug(ctx, slug)
	}, query.Enabled(slug != ""))
}

func (h *News) Latest(ctx context.Context, n int) query.Result[[]dto.NewsArticle] {
	return query.Fetch(ctx, h.client, NewsKeys.Latest(n), func(ctx context.Context) ([]dto.NewsArticle, error) {
		return h.adapter.Latest(ctx, n)
	})
}

// Projects запросы реализованных объектов.
type Projects struct {
	client  *query.Client
	adapter ProjectAdapter
}

func NewProjects(c *query.Client, a ProjectAdapter) *Projects {
	return &Projects{client: c, adapter: a}
}

func (h *Projects) List(ctx context.Context, f dto.ProjectFilters) query.Result[dto.ListResult[dto.Project]] {
	f = f.Normalize()
	return query.Fetch(ctx, h.client, ProjectKeys.List(f), func(ctx context.Context) (dto.ListResult[dto.Project], error) {
		return h.adapter.List(ctx, f)
	})
}

func (h *Projects) Detail(ctx context.Context, id string) query.Result[*dto.Project] {
	id = strings.TrimSpace(id)
	return query.Fetch(ctx, h.client, ProjectKeys.Detail(id), func(ctx context.Context) (*dto.Project, error) {
		parsed, ok := parseID(id)
		if !ok {
			return nil, nil
		}
		return h.adapter.Get(ctx, parsed)
	}, query.Enabled(hasID(id)))
}
