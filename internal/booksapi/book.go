package booksapi

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrConflict is returned when an update loses a write race: the stored row's
// version no longer matches the token carried by the caller.
var ErrConflict = errors.New("book version conflict")

// Book represents a book entity. Version is the optimistic concurrency token;
// it starts at 1 and is bumped on every successful update.
type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title" validate:"required"`
	Genre       string          `json:"genre" validate:"required"`
	PublishDate time.Time       `json:"publish_date" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	AuthorID    int64           `json:"author_id" validate:"required"`
	Author      *Author         `json:"author,omitempty"`
	Version     int             `json:"version"`
}

// Author represents a book's author. Authors are listed without projection.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookSummary is the flat list projection of a book.
type BookSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// BookDetail is the flat single-book projection.
type BookDetail struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Genre       string          `json:"genre"`
	PublishDate time.Time       `json:"publish_date"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Author      string          `json:"author"`
}

func authorName(b Book) string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}

func toSummary(b Book) BookSummary {
	return BookSummary{
		ID:     b.ID,
		Title:  b.Title,
		Author: authorName(b),
		Genre:  b.Genre,
	}
}

func toDetail(b Book) BookDetail {
	return BookDetail{
		ID:          b.ID,
		Title:       b.Title,
		Genre:       b.Genre,
		PublishDate: b.PublishDate,
		Description: b.Description,
		Price:       b.Price,
		Author:      authorName(b),
	}
}
