package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc          func(ctx context.Context, book Book) (Book, error)
	GetAllFunc       func(ctx context.Context) ([]Book, error)
	GetOneByIDFunc   func(ctx context.Context, id int64) (Book, error)
	GetOneByISBNFunc func(ctx context.Context, isbn string) (Book, error)
	UpdateTitleFunc  func(ctx context.Context, id int64, title string) (int64, error)
	SoftDeleteFunc   func(ctx context.Context, id int64) (int64, error)
}

// Add mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Add(ctx context.Context, book Book) (Book, error) {
	return m.AddFunc(ctx, book)
}

// GetAll mocks the behavior of retrieving all live books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// GetOneByID mocks the behavior of retrieving a live book by its id.
func (m *MockBookStorage) GetOneByID(ctx context.Context, id int64) (Book, error) {
	return m.GetOneByIDFunc(ctx, id)
}

// GetOneByISBN mocks the behavior of retrieving a live book by its isbn.
func (m *MockBookStorage) GetOneByISBN(ctx context.Context, isbn string) (Book, error) {
	return m.GetOneByISBNFunc(ctx, isbn)
}

// UpdateTitle mocks the behavior of updating a book title by the repository.
func (m *MockBookStorage) UpdateTitle(ctx context.Context, id int64, title string) (int64, error) {
	return m.UpdateTitleFunc(ctx, id, title)
}

// SoftDelete mocks the behavior of soft deleting a book by the repository.
func (m *MockBookStorage) SoftDelete(ctx context.Context, id int64) (int64, error) {
	return m.SoftDeleteFunc(ctx, id)
}

// Close mocks the storage shutdown.
func (m *MockBookStorage) Close() error {
	return nil
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}
