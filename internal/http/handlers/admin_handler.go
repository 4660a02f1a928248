package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/hooks"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/models"
)

type ContactExporter interface {
	Export(ctx context.Context) ([]models.ContactMessageRow, error)
}

// AdminHandler отдаёт администратору заявки с сайта.
type AdminHandler struct {
	submissions *hooks.Submissions
	contacts    ContactExporter
	now         func() time.Time
}

func NewAdminHandler(submissions *hooks.Submissions, contacts ContactExporter) *AdminHandler {
	return &AdminHandler{submissions: submissions, contacts: contacts, now: time.Now}
}

// ContactMessages обрабатывает GET /api/admin/contact-messages.
func (h *AdminHandler) ContactMessages(c *gin.Context) {
	var f dto.SubmissionFilters
	if !bindQuery(c, &f) {
		return
	}
	respondList(c, h.submissions.ContactMessages(c.Request.Context(), f), "Failed to load messages")
}

func (h *AdminHandler) Quotes(c *gin.Context) {
	var f dto.SubmissionFilters
	if !bindQuery(c, &f) {
		return
	}
	respondList(c, h.submissions.Quotes(c.Request.Context(), f), "Failed to load quote requests")
}

func (h *AdminHandler) Applications(c *gin.Context) {
	var f dto.SubmissionFilters
	if !bindQuery(c, &f) {
		return
	}
	respondList(c, h.submissions.Applications(c.Request.Context(), f), "Failed to load applications")
}

// ExportContactMessages обрабатывает GET /api/admin/contact-messages/export.csv.
func (h *AdminHandler) ExportContactMessages(c *gin.Context) {
	rows, err := h.contacts.Export(c.Request.Context())
	if err != nil {
		middleware.LogRequestError(c, err)
		response.Error(c, err, "Failed to export messages")
		return
	}

	csv, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		middleware.LogRequestError(c, err)
		response.Error(c, err, "Failed to export messages")
		return
	}

	filename := fmt.Sprintf("contact-messages-%s.csv", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csv)
}
