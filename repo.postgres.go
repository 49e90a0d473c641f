package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// uniqueViolation is the postgres error code raised when the partial
// unique index on live isbn values rejects a concurrent duplicate.
const uniqueViolation = "23505"

const booksSchema = `
CREATE TABLE IF NOT EXISTS books (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	isbn TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS books_live_isbn_idx ON books (isbn) WHERE deleted_at IS NULL;`

type postgresBookStorage struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
}

// GetPostgresPool connects to the postgres server and verifies the link.
// When schema auto sync is enabled the books table and its partial unique
// index are created on the fly from the entity shape.
func GetPostgresPool(ctx context.Context, config *Config) (*pgxpool.Pool, error) {
	cctx, cancel := context.WithTimeout(ctx, config.Postgres.ConnectTimeout)
	defer cancel()
	pool, err := pgxpool.New(cctx, config.Postgres.URI())
	if err != nil {
		return nil, fmt.Errorf("failed to build the postgres pool: %v", err)
	}
	if err = pool.Ping(cctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach the postgres server: %v", err)
	}
	if config.Postgres.SchemaAutoSync {
		if _, err = pool.Exec(cctx, booksSchema); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to synchronize the books schema: %v", err)
		}
	}
	return pool, nil
}

// NewPostgresBookStorage provides an instance of postgres-based book storage.
func NewPostgresBookStorage(logger *zap.Logger, pool *pgxpool.Pool) BookStorage {
	return &postgresBookStorage{
		logger: logger,
		pool:   pool,
	}
}

// Close shuts down the postgres connections pool.
func (ps *postgresBookStorage) Close() error {
	ps.pool.Close()
	return nil
}

// Add inserts a new book row and returns it with its assigned id.
func (ps *postgresBookStorage) Add(ctx context.Context, book Book) (Book, error) {
	err := ps.pool.QueryRow(ctx,
		`INSERT INTO books (title, isbn, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		book.Title, book.ISBN, book.CreatedAt, book.UpdatedAt,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Book{}, ErrBookAlreadyExists
		}
		return Book{}, err
	}
	return book, nil
}

// GetAll retrieves every live book row in insertion order.
func (ps *postgresBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	rows, err := ps.pool.Query(ctx,
		`SELECT id, title, isbn, created_at, updated_at
		 FROM books WHERE deleted_at IS NULL ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var book Book
		if err = rows.Scan(&book.ID, &book.Title, &book.ISBN, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// GetOneByID retrieves a live book row based on its id.
func (ps *postgresBookStorage) GetOneByID(ctx context.Context, id int64) (Book, error) {
	var book Book
	err := ps.pool.QueryRow(ctx,
		`SELECT id, title, isbn, created_at, updated_at
		 FROM books WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&book.ID, &book.Title, &book.ISBN, &book.CreatedAt, &book.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	return book, err
}

// GetOneByISBN retrieves a live book row based on its isbn.
func (ps *postgresBookStorage) GetOneByISBN(ctx context.Context, isbn string) (Book, error) {
	var book Book
	err := ps.pool.QueryRow(ctx,
		`SELECT id, title, isbn, created_at, updated_at
		 FROM books WHERE isbn = $1 AND deleted_at IS NULL`, isbn,
	).Scan(&book.ID, &book.Title, &book.ISBN, &book.CreatedAt, &book.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	return book, err
}

// UpdateTitle changes the title of a live book row and
// reports the number of rows touched by the statement.
func (ps *postgresBookStorage) UpdateTitle(ctx context.Context, id int64, title string) (int64, error) {
	tag, err := ps.pool.Exec(ctx,
		`UPDATE books SET title = $1, updated_at = now()
		 WHERE id = $2 AND deleted_at IS NULL`, title, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SoftDelete stamps a live book row as deleted and
// reports the number of rows touched by the statement.
func (ps *postgresBookStorage) SoftDelete(ctx context.Context, id int64) (int64, error) {
	tag, err := ps.pool.Exec(ctx,
		`UPDATE books SET deleted_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
