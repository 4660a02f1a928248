package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/config"
	"github.com/ignatzorin/hvacsite/internal/http/handlers"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
)

// Handlers все обработчики, которые подключает роутер.
type Handlers struct {
	Health      *handlers.HealthHandler
	Home        *handlers.HomeHandler
	Catalog     *handlers.CatalogHandler
	Content     *handlers.ContentHandler
	Contact     *handlers.ContactHandler
	Quote       *handlers.QuoteHandler
	Application *handlers.ApplicationHandler
	Forms       *handlers.FormHandler
	Admin       *handlers.AdminHandler
	WS          *handlers.WSHandler
}

const quotesPath = "/api/quotes"

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.AccessVerifier) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, quotesPath))

	r.GET("/health", h.Health.Health)
	if cfg.StorageDriver == config.StorageDriverLocal {
		r.Static("/media", cfg.MediaStoragePath)
	}

	api := r.Group("/api")
	api.GET("/home", h.Home.Home)

	products := api.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/infinite", h.Catalog.InfiniteProducts)
		products.GET("/featured", h.Catalog.FeaturedProducts)
		products.GET("/search", h.Catalog.SearchProducts)
		products.GET("/:id", middleware.UUIDValidator("id"), h.Catalog.Product)
		products.GET("/:id/related", middleware.UUIDValidator("id"), h.Catalog.RelatedProducts)
		products.GET("/:id/images", middleware.UUIDValidator("id"), h.Catalog.ProductImages)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.GET("/top", h.Catalog.TopCategories)
		categories.GET("/:id", middleware.UUIDValidator("id"), h.Catalog.Category)
		categories.GET("/:id/children", middleware.UUIDValidator("id"), h.Catalog.Subcategories)
	}

	api.GET("/jobs", h.Content.ListJobs)
	api.GET("/jobs/active", h.Content.ActiveJobs)
	api.GET("/jobs/:id", middleware.UUIDValidator("id"), h.Content.Job)
	api.GET("/news", h.Content.ListNews)
	api.GET("/news/:slug", h.Content.Article)
	api.GET("/projects", h.Content.ListProjects)
	api.GET("/projects/:id", middleware.UUIDValidator("id"), h.Content.Project)

	// Отправка форм ограничена по IP.
	submitLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/contact", submitLimit, h.Contact.Submit)
	api.POST("/applications", submitLimit, h.Application.Submit)

	quotes := r.Group(quotesPath, middleware.PublicCORS())
	{
		quotes.OPTIONS("", func(c *gin.Context) {})
		quotes.POST("", submitLimit, h.Quote.Submit)
	}

	forms := api.Group("/forms/:kind")
	{
		forms.GET("", h.Forms.State)
		forms.POST("/submit", submitLimit, h.Forms.Submit)
		forms.POST("/reset", h.Forms.Reset)
	}

	admin := api.Group("/admin", middleware.AdminOnly(tokens))
	{
		admin.GET("/contact-messages", h.Admin.ContactMessages)
		admin.GET("/contact-messages/export.csv", h.Admin.ExportContactMessages)
		admin.GET("/quotes", h.Admin.Quotes)
		admin.GET("/applications", h.Admin.Applications)
		admin.GET("/ws", h.WS.Handle)
	}

	return r
}
