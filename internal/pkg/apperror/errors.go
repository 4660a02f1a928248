package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrCodeUpload       ErrorCode = "UPLOAD_ERROR"
)

// GenericMessage показывается пользователю, когда у ошибки нет понятного текста.
const GenericMessage = "Something went wrong. Please try again later."

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
	// Details список сообщений по полям для ошибок валидации.
	Details []string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation собирает все сообщения о непрошедших проверку полях.
func Validation(details []string) *AppError {
	e := New(ErrCodeValidation, "Validation failed")
	e.Details = details
	return e
}

// Upstream оборачивает отказ Gateway. В message текст Gateway или запасной текст операции.
func Upstream(err error, message string) *AppError {
	message = strings.TrimSpace(message)
	if message == "" {
		message = GenericMessage
	}
	return Wrap(err, ErrCodeUpstream, message)
}

// Upload оборачивает ошибку загрузки файла.
func Upload(err error) *AppError {
	return Wrap(err, ErrCodeUpload, "Failed to upload file")
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool   { return is(err, ErrCodeNotFound) }
func IsForbidden(err error) bool  { return is(err, ErrCodeForbidden) }
func IsValidation(err error) bool { return is(err, ErrCodeValidation) }
func IsUpstream(err error) bool   { return is(err, ErrCodeUpstream) }
func IsUpload(err error) bool     { return is(err, ErrCodeUpload) }

// ServerMessage возвращает текст для пользователя: сообщение AppError,
// иначе текст самой ошибки, иначе GenericMessage.
func ServerMessage(err error) string {
	if err == nil {
		return GenericMessage
	}
	var appErr *AppError
	if errors.As(err, &appErr) && strings.TrimSpace(appErr.Message) != "" {
		return appErr.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return GenericMessage
}

// StatusOf возвращает HTTP статус для ошибки.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

var (
	ErrUnauthorized = New(ErrCodeUnauthorized, "authorization required")
	ErrForbidden    = New(ErrCodeForbidden, "admin role required")
)
