package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/validation"
)

type ContactSubmitter interface {
	Submit(ctx context.Context, req dto.ContactRequest) (*dto.ContactMessage, error)
}

// ContactHandler принимает форму обратной связи.
type ContactHandler struct {
	contacts ContactSubmitter
}

func NewContactHandler(contacts ContactSubmitter) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit обрабатывает POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, []string{"Request body must be valid JSON"})
		return
	}

	if errs := validation.ValidateContact(req); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	msg, err := h.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		middleware.LogRequestError(c, err)
		response.Error(c, err, "Failed to send message")
		return
	}

	response.Submitted(c, "Message sent successfully", msg)
}
