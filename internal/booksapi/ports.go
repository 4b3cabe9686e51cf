package booksapi

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=booksapi

// Repository defines the contract for book data storage. Reads return books
// with the Author association loaded in the same query.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	ListByGenre(ctx context.Context, genre string) ([]Book, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]Book, error)
	ListByPublishDate(ctx context.Context, day time.Time) ([]Book, error)
	ListAuthors(ctx context.Context) ([]Author, error)
	Get(ctx context.Context, id int64) (Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id int64) (Book, error)
}
