package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/hooks"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/query"
)

// CatalogHandler отдаёт товары и категории через кэш запросов.
type CatalogHandler struct {
	products   *hooks.Products
	categories *hooks.Categories
}

func NewCatalogHandler(products *hooks.Products, categories *hooks.Categories) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories}
}

// ListProducts обрабатывает GET /api/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var f dto.ProductFilters
	if !bindQuery(c, &f) {
		return
	}
	respondList(c, h.products.List(c.Request.Context(), f), "Failed to load products")
}

// InfiniteProducts обрабатывает GET /api/products/infinite?page=N: все страницы с 1 по N.
func (h *CatalogHandler) InfiniteProducts(c *gin.Context) {
	var f dto.ProductFilters
	if !bindQuery(c, &f) {
		return
	}
	upTo := f.Page
	if upTo < 1 {
		upTo = 1
	}
	f.Page = 0

	res := hooks.LoadUpTo(c.Request.Context(), h.products.Infinite(f), upTo)
	if res.Status == query.StatusError {
		middleware.LogRequestError(c, res.Err)
		response.Error(c, res.Err, "Failed to load products")
		return
	}
	// Лента могла быть догружена другим посетителем дальше запрошенной страницы.
	if len(res.Pages) > upTo {
		res.Pages = res.Pages[:upTo]
		res.HasMore = true
	}

	items := res.Items()
	if items == nil {
		items = []dto.Product{}
	}
	response.Success(c, gin.H{
		"items":   items,
		"pages":   res.PageCount(),
		"total":   res.Total,
		"hasMore": res.HasMore,
	})
}

func (h *CatalogHandler) FeaturedProducts(c *gin.Context) {
	respondQuery(c, h.products.Featured(c.Request.Context()), "Failed to load featured products")
}

// SearchProducts обрабатывает GET /api/products/search?q=. Короткий запрос даёт пустой список без обращения к базе.
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	var p dto.Pagination
	if !bindQuery(c, &p) {
		return
	}
	res := h.products.Search(c.Request.Context(), c.Query("q"), p)
	if res.IsIdle() {
		p = p.Normalize()
		response.List(c, []dto.Product{}, 0, p.Page, p.Limit)
		return
	}
	respondList(c, res, "Failed to search products")
}

func (h *CatalogHandler) Product(c *gin.Context) {
	respondDetail(c, h.products.Detail(c.Request.Context(), c.Param("id")), "Failed to load product", "Product not found")
}

func (h *CatalogHandler) RelatedProducts(c *gin.Context) {
	respondQuery(c, h.products.Related(c.Request.Context(), c.Param("id")), "Failed to load related products")
}

// ProductImages возвращает варианты путей к картинке товара. Существование файлов не проверяется.
func (h *CatalogHandler) ProductImages(c *gin.Context) {
	respondQuery(c, h.products.Images(c.Request.Context(), c.Param("id")), "Failed to load product images")
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	respondQuery(c, h.categories.List(c.Request.Context()), "Failed to load categories")
}

func (h *CatalogHandler) TopCategories(c *gin.Context) {
	respondQuery(c, h.categories.Top(c.Request.Context()), "Failed to load categories")
}

func (h *CatalogHandler) Category(c *gin.Context) {
	respondDetail(c, h.categories.Detail(c.Request.Context(), c.Param("id")), "Failed to load category", "Category not found")
}

func (h *CatalogHandler) Subcategories(c *gin.Context) {
	respondQuery(c, h.categories.Children(c.Request.Context(), c.Param("id")), "Failed to load categories")
}
