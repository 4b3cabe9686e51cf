package products

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product is not found.
var ErrNotFound = errors.New("product not found")

// Product represents a product row in the fixed catalog.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// Store holds the fixed product set. It is built once at startup and never
// mutated, so it is safe for unsynchronized concurrent reads.
type Store struct {
	items []Product
}

func NewStore() *Store {
	return &Store{
		items: []Product{
			{ID: 1, Name: "Tomato Soup", Category: "Groceries", Price: decimal.NewFromInt(1)},
			{ID: 2, Name: "Yo-yo", Category: "Toys", Price: decimal.RequireFromString("3.75")},
			{ID: 3, Name: "Hammer", Category: "Hardware", Price: decimal.RequireFromString("16.99")},
		},
	}
}

// All returns every product in insertion order.
func (s *Store) All() []Product {
	return s.items
}

// ByID returns the product with the given id, or ErrNotFound.
func (s *Store) ByID(id int) (Product, error) {
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// ByCategory returns products whose category matches case-insensitively.
// No matches is an empty slice, not an error.
func (s *Store) ByCategory(category string) []Product {
	matches := make([]Product, 0)
	for _, p := range s.items {
		if strings.EqualFold(p.Category, category) {
			matches = append(matches, p)
		}
	}
	return matches
}
