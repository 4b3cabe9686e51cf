package booksapi

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo is the pgx-backed Repository implementation.
type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const bookColumns = `b.id, b.title, b.genre, b.publish_date, COALESCE(b.description, ''), b.price, b.author_id, b.version, a.id, a.name`

const bookSelect = `
	SELECT ` + bookColumns + `
	FROM books b
	JOIN authors a ON a.id = b.author_id
`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	var a Author
	err := row.Scan(&b.ID, &b.Title, &b.Genre, &b.PublishDate, &b.Description, &b.Price, &b.AuthorID, &b.Version, &a.ID, &a.Name)
	if err != nil {
		return Book{}, err
	}
	b.Author = &a
	return b, nil
}

func (r *PostgresRepo) queryBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	return r.queryBooks(ctx, bookSelect+` ORDER BY b.id`)
}

// ListByGenre matches on exact, case-sensitive value equality.
func (r *PostgresRepo) ListByGenre(ctx context.Context, genre string) ([]Book, error) {
	return r.queryBooks(ctx, bookSelect+` WHERE b.genre = $1 ORDER BY b.id`, genre)
}

func (r *PostgresRepo) ListByAuthor(ctx context.Context, authorID int64) ([]Book, error) {
	return r.queryBooks(ctx, bookSelect+` WHERE b.author_id = $1 ORDER BY b.id`, authorID)
}

// ListByPublishDate compares the date portion only, ignoring time-of-day.
func (r *PostgresRepo) ListByPublishDate(ctx context.Context, day time.Time) ([]Book, error) {
	return r.queryBooks(ctx, bookSelect+` WHERE b.publish_date::date = $1::date ORDER BY b.id`, day)
}

func (r *PostgresRepo) ListAuthors(ctx context.Context) ([]Author, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM authors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]Author, 0)
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (Book, error) {
	b, err := scanBook(r.db.QueryRow(ctx, bookSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Create inserts the book and loads its author name in the same transaction,
// so the projected author is consistent with the inserted row.
func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertSQL = `
	INSERT INTO books (title, genre, publish_date, description, price, author_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, version
	`
	err = tx.QueryRow(ctx, insertSQL, b.Title, b.Genre, b.PublishDate, b.Description, b.Price, b.AuthorID).Scan(&b.ID, &b.Version)
	if err != nil {
		return err
	}

	var a Author
	if err := tx.QueryRow(ctx, `SELECT id, name FROM authors WHERE id = $1`, b.AuthorID).Scan(&a.ID, &a.Name); err != nil {
		return err
	}
	b.Author = &a

	return tx.Commit(ctx)
}

// Update replaces the row matching both id and version. Zero rows affected
// means the row is gone or someone else wrote first; callers disambiguate
// via Exists.
func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const updateSQL = `
	UPDATE books
	SET title = $2, genre = $3, publish_date = $4, description = $5, price = $6, author_id = $7, version = version + 1
	WHERE id = $1 AND version = $8
	`
	commandTag, err := r.db.Exec(ctx, updateSQL, b.ID, b.Title, b.Genre, b.PublishDate, b.Description, b.Price, b.AuthorID, b.Version)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (Book, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Book{}, err
	}
	defer tx.Rollback(ctx)

	const selectSQL = `
	SELECT id, title, genre, publish_date, COALESCE(description, ''), price, author_id, version
	FROM books
	WHERE id = $1
	`
	var b Book
	err = tx.QueryRow(ctx, selectSQL, id).Scan(&b.ID, &b.Title, &b.Genre, &b.PublishDate, &b.Description, &b.Price, &b.AuthorID, &b.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return Book{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Book{}, err
	}
	return b, nil
}
