package bookservice

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=bookservice

// Repository defines the contract for book data storage. Reads return books
// with the Author association loaded in the same query.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id int64) (Book, error)
}
