package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/hooks"
)

// ContentHandler отдаёт вакансии, новости и объекты.
type ContentHandler struct {
	jobs     *hooks.Jobs
	news     *hooks.News
	projects *hooks.Projects
}

func NewContentHandler(jobs *hooks.Jobs, news *hooks.News, projects *hooks.Projects) *ContentHandler {
	return &ContentHandler{jobs: jobs, news: news, projects: projects}
}

// ListJobs обрабатывает GET /api/jobs.
func (h *ContentHandler) ListJobs(c *gin.Context) {
	var f dto.JobFilters
	if !bindQuery(c, &f) {
		return
	}
	respondList(c, h.jobs.List(c.Request.Context(), f), "Failed to load job offerings")
}

func (h *ContentHandler) Job(c *gin.Context) {
	respondDetail(c, h.jobs.Detail(c.Request.Context(), c.Param("id")), "Failed to load job offering", "Job offering not found")
}

func (h *ContentHandler) ActiveJobs(c *gin.Context) {
	respondQuery(c, h.jobs.Active(c.Request.Context()), "Failed to load job offerings")
}

// ListNews обрабатывает GET /api/news. Посетителям показываются только опубликованные новости.
func (h *ContentHandler) ListNews(c *gin.Context) {
	var f dto.NewsFilters
	if !bindQuery(c, &f) {
		return
	}
	f.PublishedOnly = true
	respondList(c, h.news.List(c.Request.Context(), f), "Failed to load news")
}

// Article обрабатывает GET /api/news/:slug.
func (h *ContentHandler) Article(c *gin.Context) {
	res := h.news.Detail(c.Request.Context(), c.Param("slug"))
	if res.IsSuccess() && res.Data != nil && !res.Data.Published {
		res.Data = nil
	}
	respondDetail(c, res, "Failed to load article", "Article not found")
}

func (h *ContentHandler) ListProjects(c *gin.Context) {
	var f dto.ProjectFilters
	if !bindQuery(c, &f) {
		return
	}
	respondList(c, h.projects.List(c.Request.Context(), f), "Failed to load projects")
}

func (h *ContentHandler) Project(c *gin.Context) {
	respondDetail(c, h.projects.Detail(c.Request.Context(), c.Param("id")), "Failed to load project", "Project not found")
}
