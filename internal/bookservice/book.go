package bookservice

import (
	"errors"

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
	ID       int64           `json:"id"`
	Title    string          `json:"title" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Year     int             `json:"year"`
	Genre    string          `json:"genre"`
	AuthorID int64           `json:"author_id" validate:"required"`
	Author   *Author         `json:"author,omitempty"`
	Version  int             `json:"version"`
}

// Author represents a book's author. One author has many books.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookSummary is the flat list projection of a book.
type BookSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BookDetail is the flat single-book projection.
type BookDetail struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Year   int             `json:"year"`
	Genre  string          `json:"genre"`
	Author string          `json:"author"`
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
	}
}

func toDetail(b Book) BookDetail {
	return BookDetail{
		ID:     b.ID,
		Title:  b.Title,
		Price:  b.Price,
		Year:   b.Year,
		Genre:  b.Genre,
		Author: authorName(b),
	}
}
