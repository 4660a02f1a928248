package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRef краткая ссылка на категорию внутри товара.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Product карточка товара для сайта.
type Product struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    *CategoryRef `json:"category"`
	ImageURL    string       `json:"imageUrl"`
	Features    []string     `json:"features"`
	Featured    bool         `json:"featured"`
}

// Category категория каталога. ParentID пустой у категорий верхнего уровня.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	ParentID    *uuid.UUID `json:"parentId"`
}

// JobOffering вакансия. City и Country получены разбиением location по запятой.
type JobOffering struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	EmploymentType string    `json:"employment_type"`
	IsActive       bool      `json:"is_active"`
	Requirements   string    `json:"requirements"`
}

// NewsArticle новость. PublishedAt пустой у черновиков.
type NewsArticle struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Project реализованный объект с поставленным оборудованием.
type Project struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	PhotoURL      string    `json:"photo_url"`
	Location      string    `json:"location"`
	ItemsSupplied []string  `json:"items_supplied"`
	Brands        []string  `json:"brands"`
}

// ContactMessage сообщение из формы обратной связи.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// JobApplication отклик на вакансию.
type JobApplication struct {
	ID                uuid.UUID `json:"id"`
	PositionID        uuid.UUID `json:"positionId"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	CoverLetter       string    `json:"coverLetter"`
	YearsOfExperience int       `json:"years_of_experience"`
	ResumeURL         *string   `json:"resume_url"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// QuoteRequest запрос коммерческого предложения.
type QuoteRequest struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CompanyName     string    `json:"companyName"`
	PhoneNumber     string    `json:"phoneNumber"`
	ProductCategory string    `json:"productCategory"`
	ProductType     string    `json:"productType"`
	Description     string    `json:"description"`
	Timeline        string    `json:"timeline,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListResult страница списка.
type ListResult[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// TotalPages возвращает ceil(total/limit).
func (r ListResult[T]) TotalPages() int {
	if r.Limit <= 0 {
		return 0
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

// HasMore сообщает, есть ли страница после текущей.
func (r ListResult[T]) HasMore() bool {
	return r.Page < r.TotalPages()
}

// HomePage данные главной страницы.
type HomePage struct {
	FeaturedProducts []Product     `json:"featuredProducts"`
	TopCategories    []Category    `json:"topCategories"`
	LatestNews       []NewsArticle `json:"latestNews"`
	OpenPositions    []JobOffering `json:"openPositions"`
}
