package dto

import (
	"io"
	"strings"
)

// ContactRequest тело POST /api/contact.
type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// QuoteRequestInput тело POST /api/quotes.
type QuoteRequestInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	CompanyName     string `json:"companyName"`
	PhoneNumber     string `json:"phoneNumber"`
	ProductCategory string `json:"productCategory"`
	ProductType     string `json:"productType"`
	Description     string `json:"description"`
	Timeline        string `json:"timeline"`
}

// RequiredFields возвращает обязательные поля в порядке формы.
func (q QuoteRequestInput) RequiredFields() []NamedValue {
	return []NamedValue{
		{"firstName", q.FirstName},
		{"lastName", q.LastName},
		{"email", q.Email},
		{"companyName", q.CompanyName},
		{"phoneNumber", q.PhoneNumber},
		{"productCategory", q.ProductCategory},
		{"productType", q.ProductType},
		{"description", q.Description},
	}
}

// NamedValue пара имя поля/значение.
type NamedValue struct {
	Name  string
	Value string
}

// ApplicationRequest поля формы отклика на вакансию (multipart).
type ApplicationRequest struct {
	PositionID  string `form:"positionId" json:"positionId"`
	FirstName   string `form:"firstName" json:"firstName"`
	LastName    string `form:"lastName" json:"lastName"`
	Email       string `form:"email" json:"email"`
	Phone       string `form:"phone" json:"phone"`
	CoverLetter string `form:"coverLetter" json:"coverLetter"`
	// Experience диапазон стажа из выпадающего списка: "0-2", "3-5", "5-10", "10+".
	Experience string `form:"experience" json:"experience"`
}

// FileUpload прикреплённый файл.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Pagination параметры страницы. Page начинается с 1.
type Pagination struct {
	Page  int `form:"page" json:"page,omitempty"`
	Limit int `form:"limit" json:"limit,omitempty"`
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Normalize подставляет значения по умолчанию: страница 1, размер DefaultPageSize.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset возвращает смещение для нормализованной страницы.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// ProductFilters фильтры каталога товаров.
type ProductFilters struct {
	Search     string `form:"search" json:"search,omitempty"`
	CategoryID string `form:"category" json:"categoryId,omitempty"`
	Featured   bool   `form:"featured" json:"featured,omitempty"`
	Pagination
}

// Normalize приводит фильтры к каноническому виду.
func (f ProductFilters) Normalize() ProductFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	f.Pagination = f.Pagination.Normalize()
	return f
}

// JobFilters фильтры вакансий.
type JobFilters struct {
	Search         string `form:"search" json:"search,omitempty"`
	EmploymentType string `form:"type" json:"employmentType,omitempty"`
	ActiveOnly     bool   `form:"active" json:"activeOnly,omitempty"`
	Pagination
}

func (f JobFilters) Normalize() JobFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.EmploymentType = strings.TrimSpace(f.EmploymentType)
	f.Pagination = f.Pagination.Normalize()
	return f
}

// NewsFilters фильтры новостей. PublishedOnly скрывает черновики.
type NewsFilters struct {
	Search        string `form:"search" json:"search,omitempty"`
	PublishedOnly bool   `form:"published" json:"publishedOnly,omitempty"`
	Pagination
}

func (f NewsFilters) Normalize() NewsFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.Pagination = f.Pagination.Normalize()
	return f
}

// ProjectFilters фильтры объектов.
type ProjectFilters struct {
	Search string `form:"search" json:"search,omitempty"`
	Brand  string `form:"brand" json:"brand,omitempty"`
	Pagination
}

func (f ProjectFilters) Normalize() ProjectFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.Brand = strings.TrimSpace(f.Brand)
	f.Pagination = f.Pagination.Normalize()
	return f
}

// SubmissionFilters фильтры заявок для администратора.
type SubmissionFilters struct {
	Search     string `form:"search" json:"search,omitempty"`
	UnreadOnly bool   `form:"unread" json:"unreadOnly,omitempty"`
	Pagination
}

func (f SubmissionFilters) Normalize() SubmissionFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.Pagination = f.Pagination.Normalize()
	return f
}
