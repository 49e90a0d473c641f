package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// boltBookStorage is the embedded backend. Rows are json-encoded and
// keyed by their big-endian id so a cursor walks them in insertion
// order. Soft deleted rows stay in the bucket with DeletedAt set.
type boltBookStorage struct {
	logger *zap.Logger
	clock  Clocker
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltBookStorage provides an instance of bolt-based book storage.
func NewBoltBookStorage(logger *zap.Logger, clock Clocker, boltConfig *BoltDBConfig, client *bolt.DB) BookStorage {
	return &boltBookStorage{
		logger: logger,
		clock:  clock,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based book storage.
func (bs *boltBookStorage) Close() error {
	return bs.client.Close()
}

func bookKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

// Add inserts a new book record with a sequence-assigned id.
func (bs *boltBookStorage) Add(_ context.Context, book Book) (Book, error) {
	err := bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		book.ID = int64(seq)
		bookBytes, err := json.Marshal(book)
		if err != nil {
			return err
		}
		return bucket.Put(bookKey(book.ID), bookBytes)
	})
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// GetAll retrieves the list of all live books in insertion order.
func (bs *boltBookStorage) GetAll(_ context.Context) ([]Book, error) {
	books := []Book{}
	err := bs.client.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bs.config.BucketName)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var book Book
			if err := json.Unmarshal(v, &book); err != nil {
				return err
			}
			if book.DeletedAt != nil {
				continue
			}
			books = append(books, book)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetOneByID retrieves a live book record based on its id.
func (bs *boltBookStorage) GetOneByID(_ context.Context, id int64) (Book, error) {
	var book Book
	err := bs.client.View(func(tx *bolt.Tx) error {
		result := tx.Bucket([]byte(bs.config.BucketName)).Get(bookKey(id))
		if result == nil {
			return ErrBookNotFound
		}
		if err := json.Unmarshal(result, &book); err != nil {
			return err
		}
		if book.DeletedAt != nil {
			return ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// GetOneByISBN scans the bucket for a live book record with a matching isbn.
func (bs *boltBookStorage) GetOneByISBN(_ context.Context, isbn string) (Book, error) {
	var found *Book
	err := bs.client.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bs.config.BucketName)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var book Book
			if err := json.Unmarshal(v, &book); err != nil {
				return err
			}
			if book.DeletedAt == nil && book.ISBN == isbn {
				found = &book
				return nil
			}
		}
		return ErrBookNotFound
	})
	if err != nil {
		return Book{}, err
	}
	return *found, nil
}

// UpdateTitle rewrites a live book record with the new title and
// reports the number of records touched.
func (bs *boltBookStorage) UpdateTitle(_ context.Context, id int64, title string) (int64, error) {
	var affected int64
	err := bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		result := bucket.Get(bookKey(id))
		if result == nil {
			return nil
		}
		var book Book
		if err := json.Unmarshal(result, &book); err != nil {
			return err
		}
		if book.DeletedAt != nil {
			return nil
		}
		book.Title = title
		book.UpdatedAt = bs.clock.Now().UTC()
		bookBytes, err := json.Marshal(book)
		if err != nil {
			return err
		}
		if err = bucket.Put(bookKey(id), bookBytes); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	return affected, err
}

// SoftDelete rewrites a live book record with a deletion stamp and
// reports the number of records touched. The record stays in the bucket.
func (bs *boltBookStorage) SoftDelete(_ context.Context, id int64) (int64, error) {
	var affected int64
	err := bs.client.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bs.config.BucketName))
		result := bucket.Get(bookKey(id))
		if result == nil {
			return nil
		}
		var book Book
		if err := json.Unmarshal(result, &book); err != nil {
			return err
		}
		if book.DeletedAt != nil {
			return nil
		}
		now := bs.clock.Now().UTC()
		book.DeletedAt = &now
		bookBytes, err := json.Marshal(book)
		if err != nil {
			return err
		}
		if err = bucket.Put(bookKey(id), bookBytes); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	return affected, err
}
