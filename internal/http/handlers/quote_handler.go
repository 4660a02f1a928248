package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/validation"
)

type QuoteSubmitter interface {
	Submit(ctx context.Context, req dto.QuoteRequestInput) (*dto.QuoteRequest, error)
}

// QuoteHandler принимает запросы коммерческого предложения.
type QuoteHandler struct {
	quotes QuoteSubmitter
}

func NewQuoteHandler(quotes QuoteSubmitter) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Submit обрабатывает POST /api/quotes.
func (h *QuoteHandler) Submit(c *gin.Context) {
	var req dto.QuoteRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, []string{"Request body must be valid JSON"})
		return
	}

	if missing := validation.MissingQuoteFields(req); len(missing) > 0 {
		response.MissingFields(c, missing)
		return
	}
	if errs := validation.ValidateQuote(req); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	quote, err := h.quotes.Submit(c.Request.Context(), req)
	if err != nil {
		middleware.LogRequestError(c, err)
		response.Error(c, err, "Failed to submit quote request")
		return
	}

	response.Submitted(c, "Quote request submitted successfully", quote)
}
