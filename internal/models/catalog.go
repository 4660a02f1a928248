package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CategoryRow строка таблицы categories.
type CategoryRow struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	ImageURL    *string    `db:"image_url"`
	ParentID    *uuid.UUID `db:"parent_id"`
	SortOrder   int        `db:"sort_order"`
	CreatedAt   time.Time  `db:"created_at"`
}

// ProductRow строка таблицы products вместе с именем категории.
type ProductRow struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Description  *string        `db:"description"`
	CategoryID   *uuid.UUID     `db:"category_id"`
	CategoryName *string        `db:"category_name"`
	ImageURL     *string        `db:"image_url"`
	Features     pq.StringArray `db:"features"`
	IsFeatured   bool           `db:"is_featured"`
	CreatedAt    time.Time      `db:"created_at"`
}

// ProjectRow строка таблицы projects (реализованные объекты).
type ProjectRow struct {
	ID            uuid.UUID      `db:"id"`
	Title         string         `db:"title"`
	PhotoURL      *string        `db:"photo_url"`
	Location      *string        `db:"location"`
	ItemsSupplied pq.StringArray `db:"items_supplied"`
	Brands        pq.StringArray `db:"brands"`
	CreatedAt     time.Time      `db:"created_at"`
}
