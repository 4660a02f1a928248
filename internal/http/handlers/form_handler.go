package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/form"
	"github.com/ignatzorin/hvacsite/internal/hooks"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/logger"
	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
	"github.com/ignatzorin/hvacsite/internal/service"
	"github.com/ignatzorin/hvacsite/internal/validation"
)

const (
	formSessionName = "hvac_forms"
	sessionIDKey    = "sid"
)

// NewFormSessionStore создаёт хранилище cookie-сессий посетителей.
func NewFormSessionStore(secret string, ttl time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// RegisterForms регистрирует формы обратной связи и запроса КП.
// Данные проверяются до мутации теми же правилами, что и в POST /api/contact и /api/quotes.
func RegisterForms(registry *form.Registry, subs *hooks.Submissions) {
	registry.Register(service.KindContact, func(inbox *form.Inbox) form.Form {
		return form.New(
			form.Validate(form.Submitter[dto.ContactRequest, *dto.ContactMessage](subs.SubmitContact()), checkContact),
			form.Effects[*dto.ContactMessage]{
				Notifier:       inbox,
				SuccessTitle:   "Message sent",
				SuccessMessage: "Thank you for contacting us. We will get back to you soon.",
				ErrorTitle:     "Error",
			},
		)
	})
	registry.Register(service.KindQuote, func(inbox *form.Inbox) form.Form {
		return form.New(
			form.Validate(form.Submitter[dto.QuoteRequestInput, *dto.QuoteRequest](subs.SubmitQuote()), checkQuote),
			form.Effects[*dto.QuoteRequest]{
				Notifier:       inbox,
				SuccessTitle:   "Quote request submitted",
				SuccessMessage: "Our sales team will contact you shortly.",
				ErrorTitle:     "Error",
			},
		)
	})
}

func checkContact(req dto.ContactRequest) error {
	if errs := validation.ValidateContact(req); len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}

func checkQuote(req dto.QuoteRequestInput) error {
	if missing := validation.MissingQuoteFields(req); len(missing) > 0 {
		details := make([]string, 0, len(missing))
		for _, name := range missing {
			details = append(details, name+" is required")
		}
		return apperror.Validation(details)
	}
	if errs := validation.ValidateQuote(req); len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}

// FormView состояние формы и накопленные уведомления посетителя.
type FormView struct {
	Kind string `json:"kind"`
	form.Snapshot
	Notifications []form.Notification `json:"notifications"`
}

// FormHandler серверный сценарий форм: состояние хранится на сервере
// по cookie-сессии посетителя.
type FormHandler struct {
	registry *form.Registry
	store    sessions.Store
}

func NewFormHandler(registry *form.Registry, store sessions.Store) *FormHandler {
	return &FormHandler{registry: registry, store: store}
}

// State обрабатывает GET /api/forms/:kind.
func (h *FormHandler) State(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	f, ok := h.form(c, sid)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, sid, f.Snapshot())
}

// Submit обрабатывает POST /api/forms/:kind/submit.
func (h *FormHandler) Submit(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	switch c.Param("kind") {
	case service.KindContact:
		submitForm[dto.ContactRequest, *dto.ContactMessage](c, h, sid)
	case service.KindQuote:
		submitForm[dto.QuoteRequestInput, *dto.QuoteRequest](c, h, sid)
	default:
		response.NotFound(c, "Unknown form")
	}
}

// Reset обрабатывает POST /api/forms/:kind/reset.
func (h *FormHandler) Reset(c *gin.Context) {
	sid, ok := h.sessionID(c)
	if !ok {
		return
	}
	f, ok := h.form(c, sid)
	if !ok {
		return
	}
	status := http.StatusOK
	if err := f.Reset(); err != nil {
		status = http.StatusConflict
	}
	h.render(c, status, sid, f.Snapshot())
}

func submitForm[P, R any](c *gin.Context, h *FormHandler, sid string) {
	kind := c.Param("kind")

	var payload P
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.ValidationFailed(c, []string{"Request body must be valid JSON"})
		return
	}

	m, err := form.Lookup[P, R](h.registry, sid, kind)
	if err != nil {
		middleware.LogRequestError(c, err)
		response.Error(c, err, "")
		return
	}

	status := http.StatusOK
	if _, err := m.Submit(c.Request.Context(), payload); err != nil {
		switch {
		case errors.Is(err, form.ErrSubmitInFlight), errors.Is(err, form.ErrAlreadySubmitted):
			status = http.StatusConflict
		default:
			middleware.LogRequestError(c, err)
			status = apperror.StatusOf(err)
		}
	}
	h.render(c, status, sid, m.Snapshot())
}

func (h *FormHandler) form(c *gin.Context, sid string) (form.Form, bool) {
	f, err := h.registry.Form(sid, c.Param("kind"))
	if errors.Is(err, form.ErrUnknownKind) {
		response.NotFound(c, "Unknown form")
		return nil, false
	}
	if err != nil {
		response.Error(c, err, "")
		return nil, false
	}
	return f, true
}

func (h *FormHandler) render(c *gin.Context, status int, sid string, snap form.Snapshot) {
	c.JSON(status, response.Envelope{
		Success: status == http.StatusOK,
		Data: FormView{
			Kind:          c.Param("kind"),
			Snapshot:      snap,
			Notifications: h.registry.Inbox(sid).Drain(),
		},
	})
}

// sessionID возвращает идентификатор посетителя, создавая сессию при первом обращении.
// Повреждённая cookie заменяется новой.
func (h *FormHandler) sessionID(c *gin.Context) (string, bool) {
	sess, err := h.store.Get(c.Request, formSessionName)
	if err != nil {
		logger.Component("forms").WithError(err).Debug("cookie сессии не прочитана, создаём новую")
	}
	if sid, ok := sess.Values[sessionIDKey].(string); ok && strings.TrimSpace(sid) != "" {
		return sid, true
	}

	sid := uuid.NewString()
	sess.Values[sessionIDKey] = sid
	if err := sess.Save(c.Request, c.Writer); err != nil {
		middleware.LogRequestError(c, fmt.Errorf("forms: save session: %w", err))
		response.Error(c, err, "")
		return "", false
	}
	return sid, true
}
