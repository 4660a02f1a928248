package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/hvacsite/internal/dto"
)

// Ограничения полей формы обратной связи.
const (
	MinNameLength    = 2
	MaxNameLength    = 50
	MinSubjectLength = 5
	MaxSubjectLength = 100
	MinMessageLength = 10
	MaxMessageLength = 1000

	MaxCoverLetterLength = 5000
	MaxPhoneLength       = 30
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if (min > 0 && length < min) || (max > 0 && length > max) {
		return fmt.Errorf("%s must be between %d and %d characters", fieldName, min, max)
	}
	return nil
}

// ValidateEmail проверяет формат local@domain.tld.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("Invalid email format")
	}
	return nil
}

// ValidateRequired проверяет, что строка не пустая.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// Errors накапливает сообщения, не останавливаясь на первой ошибке.
type Errors []string

func (e *Errors) add(err error) {
	if err != nil {
		*e = append(*e, err.Error())
	}
}

// requiredWithLength: пустое поле даёт "is required", иначе проверяется длина.
func (e *Errors) requiredWithLength(field, value string, min, max int) {
	if err := ValidateRequired(field, value); err != nil {
		e.add(err)
		return
	}
	e.add(ValidateLength(field, strings.TrimSpace(value), min, max))
}

func (e *Errors) email(value string) {
	if err := ValidateRequired("email", value); err != nil {
		e.add(err)
		return
	}
	e.add(ValidateEmail(value))
}

// ValidateContact возвращает все ошибки формы обратной связи.
func ValidateContact(req dto.ContactRequest) Errors {
	var errs Errors
	errs.requiredWithLength("firstName", req.FirstName, MinNameLength, MaxNameLength)
	errs.requiredWithLength("lastName", req.LastName, MinNameLength, MaxNameLength)
	errs.email(req.Email)
	errs.requiredWithLength("subject", req.Subject, MinSubjectLength, MaxSubjectLength)
	errs.requiredWithLength("message", req.Message, MinMessageLength, MaxMessageLength)
	return errs
}

// MissingQuoteFields возвращает имена всех пустых обязательных полей запроса КП.
func MissingQuoteFields(req dto.QuoteRequestInput) []string {
	var missing []string
	for _, f := range req.RequiredFields() {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// ValidateQuote проверяет формат полей запроса КП, наличие которых уже подтверждено.
func ValidateQuote(req dto.QuoteRequestInput) Errors {
	var errs Errors
	errs.add(ValidateEmail(req.Email))
	return errs
}

// ValidateApplication проверяет отклик на вакансию.
func ValidateApplication(req dto.ApplicationRequest) Errors {
	var errs Errors
	errs.add(ValidateRequired("positionId", req.PositionID))
	errs.requiredWithLength("firstName", req.FirstName, MinNameLength, MaxNameLength)
	errs.requiredWithLength("lastName", req.LastName, MinNameLength, MaxNameLength)
	errs.email(req.Email)
	if req.Phone != "" {
		errs.add(ValidateLength("phone", req.Phone, 0, MaxPhoneLength))
	}
	if req.CoverLetter != "" {
		errs.add(ValidateLength("coverLetter", req.CoverLetter, 0, MaxCoverLetterLength))
	}
	return errs
}
