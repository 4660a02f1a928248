package service

import (
	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/models"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toStrings(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}

func mapRows[R, T any](rows []R, fn func(*R) T) []T {
	out := make([]T, 0, len(rows))
	for i := range rows {
		out = append(out, fn(&rows[i]))
	}
	return out
}

func toProduct(r *models.ProductRow) dto.Product {
	p := dto.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: deref(r.Description),
		ImageURL:    deref(r.ImageURL),
		Features:    toStrings(r.Features),
		Featured:    r.IsFeatured,
	}
	if r.CategoryID != nil {
		p.Category = &dto.CategoryRef{ID: *r.CategoryID, Name: deref(r.CategoryName)}
	}
	return p
}

func toCategory(r *models.CategoryRow) dto.Category {
	return dto.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: deref(r.Description),
		ImageURL:    deref(r.ImageURL),
		ParentID:    r.ParentID,
	}
}

func toJob(r *models.JobOfferingRow) dto.JobOffering {
	city, country := SplitLocation(r.Location)
	return dto.JobOffering{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		City:           city,
		Country:        country,
		EmploymentType: r.EmploymentType,
		IsActive:       r.IsActive,
		Requirements:   deref(r.Requirements),
	}
}

func toNews(r *models.NewsArticleRow) dto.NewsArticle {
	return dto.NewsArticle{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Content:     r.Content,
		Summary:     deref(r.Summary),
		Published:   r.Published,
		PublishedAt: r.PublishedAt,
	}
}

func toProject(r *models.ProjectRow) dto.Project {
	return dto.Project{
		ID:            r.ID,
		Title:         r.Title,
		PhotoURL:      deref(r.PhotoURL),
		Location:      deref(r.Location),
		ItemsSupplied: toStrings(r.ItemsSupplied),
		Brands:        toStrings(r.Brands),
	}
}

func toContactMessage(r *models.ContactMessageRow) dto.ContactMessage {
	return dto.ContactMessage{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Subject:   r.Subject,
		Message:   r.Message,
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt,
	}
}

func toApplication(r *models.JobApplicationRow) dto.JobApplication {
	return dto.JobApplication{
		ID:                r.ID,
		PositionID:        r.PositionID,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		Phone:             deref(r.Phone),
		CoverLetter:       deref(r.CoverLetter),
		YearsOfExperience: r.YearsOfExperience,
		ResumeURL:         r.ResumeURL,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
	}
}

func toQuote(r *models.QuoteRequestRow) dto.QuoteRequest {
	return dto.QuoteRequest{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		CompanyName:     r.CompanyName,
		PhoneNumber:     r.PhoneNumber,
		ProductCategory: r.ProductCategory,
		ProductType:     r.ProductType,
		Description:     r.Description,
		Timeline:        deref(r.Timeline),
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
	}
}

// listResult собирает страницу ответа из строк Gateway.
func listResult[R, T any](rows []R, total int, p dto.Pagination, fn func(*R) T) dto.ListResult[T] {
	p = p.Normalize()
	return dto.ListResult[T]{
		Data:  mapRows(rows, fn),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}
}
