package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы заявок.
const (
	SubmissionStatusNew = "new"
)

// ContactMessageRow строка таблицы contact_messages.
type ContactMessageRow struct {
	ID        uuid.UUID `db:"id" csv:"id"`
	Name      string    `db:"name" csv:"name"`
	Email     string    `db:"email" csv:"email"`
	Subject   string    `db:"subject" csv:"subject"`
	Message   string    `db:"message" csv:"message"`
	IsRead    bool      `db:"is_read" csv:"is_read"`
	CreatedAt time.Time `db:"created_at" csv:"created_at"`
}

// JobApplicationRow строка таблицы job_applications.
type JobApplicationRow struct {
	ID                uuid.UUID `db:"id"`
	PositionID        uuid.UUID `db:"position_id"`
	FirstName         string    `db:"first_name"`
	LastName          string    `db:"last_name"`
	Email             string    `db:"email"`
	Phone             *string   `db:"phone"`
	CoverLetter       *string   `db:"cover_letter"`
	YearsOfExperience int       `db:"years_of_experience"`
	ResumeURL         *string   `db:"resume_url"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
}

// QuoteRequestRow строка таблицы quote_requests.
type QuoteRequestRow struct {
	ID              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	Email           string    `db:"email"`
	CompanyName     string    `db:"company_name"`
	PhoneNumber     string    `db:"phone_number"`
	ProductCategory string    `db:"product_category"`
	ProductType     string    `db:"product_type"`
	Description     string    `db:"description"`
	Timeline        *string   `db:"timeline"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
}
