package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestIsValidISBN ensures the structural isbn pattern acceptance.
func TestIsValidISBN(t *testing.T) {
	testCases := []struct {
		isbn  string
		valid bool
	}{
		{"123-456-789", true},
		{"123-45678-9012345-1234567-8", true},
		{"978-0-306-40615-7", true},
		{"978030640615X", true},
		{"978-1-4028-9462-x", true},
		{"12345678", true},
		{"asd-aa", false},
		{"1234567", false},
		{"", false},
		{"978--0-306-40615-7", false},
		{"97-80-306-40615-7", false},
		{"123-45678-9012345-1234567-8-", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.isbn, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidISBN(tc.isbn))
		})
	}
}

// TestBookServiceCreate ensures validation, uniqueness and persistence rules.
func TestBookServiceCreate(t *testing.T) {
	t.Run("should fail: empty title", func(t *testing.T) {
		added := false
		mockRepo := &MockBookStorage{
			AddFunc: func(ctx context.Context, book Book) (Book, error) {
				added = true
				return book, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		_, err := bs.Create(context.TODO(), CreateBookInput{Title: "", ISBN: "123-456-789"})
		assert.ErrorIs(t, err, ErrInvalidBookInput)
		assert.False(t, added, "no write expected on validation failure")
	})

	t.Run("should fail: malformed isbn", func(t *testing.T) {
		added := false
		mockRepo := &MockBookStorage{
			AddFunc: func(ctx context.Context, book Book) (Book, error) {
				added = true
				return book, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		_, err := bs.Create(context.TODO(), CreateBookInput{Title: "Test Book", ISBN: "asd-aa"})
		assert.ErrorIs(t, err, ErrInvalidBookInput)
		assert.False(t, added, "no write expected on validation failure")
	})

	t.Run("should fail: isbn already in use", func(t *testing.T) {
		added := false
		mockRepo := &MockBookStorage{
			GetOneByISBNFunc: func(ctx context.Context, isbn string) (Book, error) {
				return Book{ID: 7, Title: "Existing", ISBN: isbn}, nil
			},
			AddFunc: func(ctx context.Context, book Book) (Book, error) {
				added = true
				return book, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		_, err := bs.Create(context.TODO(), CreateBookInput{Title: "Test Book", ISBN: "123-456-789"})
		assert.ErrorIs(t, err, ErrBookAlreadyExists)
		assert.False(t, added, "no write expected on conflict")
	})

	t.Run("should fail: uniqueness check errored", func(t *testing.T) {
		storeErr := errors.New("storage failure")
		mockRepo := &MockBookStorage{
			GetOneByISBNFunc: func(ctx context.Context, isbn string) (Book, error) {
				return Book{}, storeErr
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		_, err := bs.Create(context.TODO(), CreateBookInput{Title: "Test Book", ISBN: "123-456-789"})
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("should pass: valid payload", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetOneByISBNFunc: func(ctx context.Context, isbn string) (Book, error) {
				return Book{}, ErrBookNotFound
			},
			AddFunc: func(ctx context.Context, book Book) (Book, error) {
				book.ID = 1
				return book, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		book, err := bs.Create(context.TODO(), CreateBookInput{Title: "Test Book", ISBN: "123-45678-9012345-1234567-8"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), book.ID)
		assert.Equal(t, "Test Book", book.Title)
		assert.Equal(t, "123-45678-9012345-1234567-8", book.ISBN)
		assert.Equal(t, NewMockClocker().Now(), book.CreatedAt)
	})
}

// TestBookServiceGetAll ensures list retrieval passthrough.
func TestBookServiceGetAll(t *testing.T) {
	t.Run("should pass: empty store", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				return []Book{}, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		books, err := bs.GetAll(context.TODO())
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("should fail: storage fault propagates", func(t *testing.T) {
		storeErr := errors.New("storage failure")
		mockRepo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				return nil, storeErr
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		_, err := bs.GetAll(context.TODO())
		assert.ErrorIs(t, err, storeErr)
	})
}

// TestBookServiceGetOne ensures missing ids surface as not found.
func TestBookServiceGetOne(t *testing.T) {
	mockRepo := &MockBookStorage{
		GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
			if id == 1 {
				return Book{ID: 1, Title: "Test Book", ISBN: "123-456-789"}, nil
			}
			return Book{}, ErrBookNotFound
		},
	}
	bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)

	book, err := bs.GetOne(context.TODO(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)

	_, err = bs.GetOne(context.TODO(), 0)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

// TestBookServiceUpdate ensures only the title moves and the affected
// rows count drives the outcome.
func TestBookServiceUpdate(t *testing.T) {
	t.Run("should fail: unknown id", func(t *testing.T) {
		newTitle := "New title"
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		err := bs.Update(context.TODO(), 42, UpdateBookInput{Title: &newTitle})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("should pass: only title reaches the store", func(t *testing.T) {
		newTitle := "New title"
		var gotTitle string
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Old title", ISBN: "123-456-789"}, nil
			},
			UpdateTitleFunc: func(ctx context.Context, id int64, title string) (int64, error) {
				gotTitle = title
				return 1, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		err := bs.Update(context.TODO(), 1, UpdateBookInput{Title: &newTitle, ISBN: "999-9999999-9"})
		require.NoError(t, err)
		assert.Equal(t, "New title", gotTitle)
	})

	t.Run("should pass: patch without title touches nothing", func(t *testing.T) {
		touched := false
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Old title", ISBN: "123-456-789"}, nil
			},
			UpdateTitleFunc: func(ctx context.Context, id int64, title string) (int64, error) {
				touched = true
				return 1, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		err := bs.Update(context.TODO(), 1, UpdateBookInput{ISBN: "999-9999999-9"})
		require.NoError(t, err)
		assert.False(t, touched, "no write expected when the patch has no title")
	})

	t.Run("should fail: empty title never reaches the store", func(t *testing.T) {
		emptyTitle := ""
		touched := false
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Old title", ISBN: "123-456-789"}, nil
			},
			UpdateTitleFunc: func(ctx context.Context, id int64, title string) (int64, error) {
				touched = true
				return 1, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		err := bs.Update(context.TODO(), 1, UpdateBookInput{Title: &emptyTitle})
		assert.ErrorIs(t, err, ErrInvalidBookInput)
		assert.False(t, touched, "no write expected on an empty title")
	})

	t.Run("should fail: unexpected affected rows count", func(t *testing.T) {
		newTitle := "New title"
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Old title", ISBN: "123-456-789"}, nil
			},
			UpdateTitleFunc: func(ctx context.Context, id int64, title string) (int64, error) {
				return 0, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		err := bs.Update(context.TODO(), 1, UpdateBookInput{Title: &newTitle})
		assert.ErrorIs(t, err, ErrBookUpdateFailed)
	})
}

// TestBookServiceDelete ensures soft deletion outcomes.
func TestBookServiceDelete(t *testing.T) {
	t.Run("should fail: unknown id", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		err := bs.Delete(context.TODO(), 42)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("should pass: one row touched", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Test Book", ISBN: "123-456-789"}, nil
			},
			SoftDeleteFunc: func(ctx context.Context, id int64) (int64, error) {
				return 1, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		assert.NoError(t, bs.Delete(context.TODO(), 1))
	})

	t.Run("should fail: unexpected affected rows count", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetOneByIDFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id, Title: "Test Book", ISBN: "123-456-789"}, nil
			},
			SoftDeleteFunc: func(ctx context.Context, id int64) (int64, error) {
				return 0, nil
			},
		}
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), mockRepo)
		err := bs.Delete(context.TODO(), 1)
		assert.ErrorIs(t, err, ErrBookDeleteFailed)
	})
}
