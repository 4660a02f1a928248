package models

import (
	"time"

	"github.com/google/uuid"
)

// JobOfferingRow строка таблицы job_offerings.
type JobOfferingRow struct {
	ID             uuid.UUID `db:"id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Location       string    `db:"location"`
	EmploymentType string    `db:"employment_type"`
	IsActive       bool      `db:"is_active"`
	Requirements   *string   `db:"requirements"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewsArticleRow строка таблицы news_articles.
// Статья считается черновиком, пока published_at не заполнен.
type NewsArticleRow struct {
	ID          uuid.UUID  `db:"id"`
	Title       string     `db:"title"`
	Slug        string     `db:"slug"`
	Content     string     `db:"content"`
	Summary     *string    `db:"summary"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
}
