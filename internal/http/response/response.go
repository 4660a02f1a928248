package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
)

// Envelope общий формат ответов API: {success, data|error, message}.
type Envelope struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message,omitempty"`
	Data             any      `json:"data,omitempty"`
	Error            string   `json:"error,omitempty"`
	Code             string   `json:"code,omitempty"`
	ValidationErrors []string `json:"validationErrors,omitempty"`
	MissingFields    []string `json:"missingFields,omitempty"`
}

// ListEnvelope ответ со страницей списка.
type ListEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// Сообщения, которые видит посетитель.
const (
	MessageValidationFailed = "Validation failed"
	MessageMissingFields    = "Missing required fields"
	MessageNotFound         = "Not found"
)

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Submitted отвечает на успешную отправку формы.
func Submitted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func List(c *gin.Context, data any, total, page, limit int) {
	c.JSON(http.StatusOK, ListEnvelope{
		Success: true,
		Data:    data,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: limit > 0 && page*limit < total,
	})
}

// ValidationFailed перечисляет все непрошедшие проверку поля.
func ValidationFailed(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success:          false,
		Error:            MessageValidationFailed,
		ValidationErrors: errs,
	})
}

// MissingFields перечисляет имена всех пустых обязательных полей.
func MissingFields(c *gin.Context, fields []string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success:       false,
		Error:         MessageMissingFields,
		MissingFields: fields,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Error:   message,
		Code:    string(apperror.ErrCodeBadRequest),
	})
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = MessageNotFound
	}
	c.JSON(http.StatusNotFound, Envelope{
		Success: false,
		Error:   message,
		Code:    string(apperror.ErrCodeNotFound),
	})
}

func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Success: false,
		Error:   message,
		Code:    string(apperror.ErrCodeUnauthorized),
	})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{
		Success: false,
		Error:   message,
		Code:    string(apperror.ErrCodeForbidden),
	})
}

// Error отвечает на ошибку операции. message содержит текст операции для посетителя,
// в error попадает сообщение сервера. Текст ошибок без AppError наружу не отдаётся.
// Ошибки валидации отдаются в формате ValidationFailed.
func Error(c *gin.Context, err error, message string) {
	if message == "" {
		message = apperror.GenericMessage
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Message: message,
			Error:   apperror.GenericMessage,
			Code:    string(apperror.ErrCodeInternal),
		})
		return
	}

	if appErr.Code == apperror.ErrCodeValidation {
		ValidationFailed(c, appErr.Details)
		return
	}
	c.JSON(appErr.HTTPStatus, Envelope{
		Success: false,
		Message: message,
		Error:   apperror.ServerMessage(appErr),
		Code:    string(appErr.Code),
	})
}
