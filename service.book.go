package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// BookServiceProvider describes the book business operations.
type BookServiceProvider interface {
	Create(ctx context.Context, in CreateBookInput) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, id int64, in UpdateBookInput) error
	Delete(ctx context.Context, id int64) error
}

// BookService holds the business rules of the books api: input
// validation, isbn uniqueness and the error taxonomy. It is the
// only layer with logic, everything else is translation.
type BookService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage BookStorage
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, storage BookStorage) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
	}
}

// Create validates the input, enforces the one-live-book-per-isbn rule
// then persists the new record. The store assigns the identifier.
func (bs *BookService) Create(ctx context.Context, in CreateBookInput) (Book, error) {
	if err := ValidateCreateBookInput(in); err != nil {
		bs.logger.Error("service: invalid book creation input", zap.Error(err))
		return Book{}, err
	}

	_, err := bs.storage.GetOneByISBN(ctx, in.ISBN)
	switch {
	case err == nil:
		bs.logger.Error("service: book already exists", zap.String("book.isbn", in.ISBN))
		return Book{}, ErrBookAlreadyExists
	case !errors.Is(err, ErrBookNotFound):
		bs.logger.Error("service: failed to check isbn uniqueness", zap.String("book.isbn", in.ISBN), zap.Error(err))
		return Book{}, err
	}

	now := bs.clock.Now().UTC()
	book, err := bs.storage.Add(ctx, Book{
		Title:     in.Title,
		ISBN:      in.ISBN,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		bs.logger.Error("service: failed to create book", zap.String("book.isbn", in.ISBN), zap.Error(err))
		return Book{}, err
	}
	return book, nil
}

// GetAll returns all live books in insertion order. An empty store
// yields an empty list, not an error.
func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	books, err := bs.storage.GetAll(ctx)
	if err != nil {
		bs.logger.Error("service: failed to get all books", zap.Error(err))
	}
	return books, err
}

// GetOne returns the live book matching the given id.
func (bs *BookService) GetOne(ctx context.Context, id int64) (Book, error) {
	book, err := bs.storage.GetOneByID(ctx, id)
	if err != nil {
		bs.logger.Error("service: failed to get book", zap.Int64("book.id", id), zap.Error(err))
	}
	return book, err
}

// Update changes the title of an existing live book. The isbn and the id
// never change whatever the patch contains. A patch carrying no title
// succeeds without touching the store. The store must report exactly
// one affected row, anything else is a server-side fault.
func (bs *BookService) Update(ctx context.Context, id int64, in UpdateBookInput) error {
	if _, err := bs.GetOne(ctx, id); err != nil {
		return err
	}

	if in.Title == nil {
		return nil
	}
	if len(*in.Title) == 0 {
		bs.logger.Error("service: empty title on book update", zap.Int64("book.id", id))
		return ErrInvalidBookInput
	}

	affected, err := bs.storage.UpdateTitle(ctx, id, *in.Title)
	if err != nil {
		bs.logger.Error("service: failed to update book", zap.Int64("book.id", id), zap.Error(err))
		return err
	}
	if affected != 1 {
		bs.logger.Error("service: unexpected affected rows count on update", zap.Int64("book.id", id), zap.Int64("affected", affected))
		return ErrBookUpdateFailed
	}
	return nil
}

// Delete marks an existing live book as deleted. The row stays in the
// store and is no longer visible from any read operation.
func (bs *BookService) Delete(ctx context.Context, id int64) error {
	if _, err := bs.GetOne(ctx, id); err != nil {
		return err
	}

	affected, err := bs.storage.SoftDelete(ctx, id)
	if err != nil {
		bs.logger.Error("service: failed to delete book", zap.Int64("book.id", id), zap.Error(err))
		return err
	}
	if affected != 1 {
		bs.logger.Error("service: unexpected affected rows count on delete", zap.Int64("book.id", id), zap.Int64("affected", affected))
		return ErrBookDeleteFailed
	}
	return nil
}
