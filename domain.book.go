package main

import (
	"context"
	"time"
)

// Book represents a book record. A book is never physically removed:
// deletion sets DeletedAt and every exposed read path skips such rows.
type Book struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	ISBN      string     `json:"isbn"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CreateBookInput is the payload accepted by the book creation endpoint.
type CreateBookInput struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// UpdateBookInput is the payload accepted by the book update endpoint.
// Only the title is ever applied and a patch without a title leaves the
// record unchanged. An isbn field, if present, is ignored since the isbn
// is immutable once the book exists.
type UpdateBookInput struct {
	Title *string `json:"title"`
	ISBN  string  `json:"isbn"`
}

// BookStorage defines the operations a book store backend must support.
// Write operations report how many rows they touched so the service can
// tell a clean single-row write from a store anomaly.
type BookStorage interface {
	Add(ctx context.Context, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	GetOneByID(ctx context.Context, id int64) (Book, error)
	GetOneByISBN(ctx context.Context, isbn string) (Book, error)
	UpdateTitle(ctx context.Context, id int64, title string) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
	Close() error
}
