package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/hooks"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/query"
)

const homeLatestNews = 3

// HomeHandler собирает данные главной страницы одним запросом.
type HomeHandler struct {
	products   *hooks.Products
	categories *hooks.Categories
	news       *hooks.News
	jobs       *hooks.Jobs
}

func NewHomeHandler(products *hooks.Products, categories *hooks.Categories, news *hooks.News, jobs *hooks.Jobs) *HomeHandler {
	return &HomeHandler{products: products, categories: categories, news: news, jobs: jobs}
}

// Home обрабатывает GET /api/home. Четыре блока читаются параллельно, ошибка любого даёт 500.
func (h *HomeHandler) Home(c *gin.Context) {
	var page dto.HomePage
	g, ctx := errgroup.WithContext(c.Request.Context())

	g.Go(func() error {
		return collect(h.products.Featured(ctx), &page.FeaturedProducts)
	})
	g.Go(func() error {
		return collect(h.categories.Top(ctx), &page.TopCategories)
	})
	g.Go(func() error {
		return collect(h.news.Latest(ctx, homeLatestNews), &page.LatestNews)
	})
	g.Go(func() error {
		return collect(h.jobs.Active(ctx), &page.OpenPositions)
	})

	if err := g.Wait(); err != nil {
		middleware.LogRequestError(c, err)
		response.Error(c, err, "Failed to load home page")
		return
	}
	response.Success(c, page)
}

func collect[T any](res query.Result[[]T], dst *[]T) error {
	if res.IsError() {
		return res.Err
	}
	if res.Data == nil {
		*dst = []T{}
		return nil
	}
	*dst = res.Data
	return nil
}

