package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BlobStorage keeps uploaded objects in the same database under "blob/<key>".
// It cannot sign URLs; SignedURL always returns "".
type BlobStorage struct {
	db *badger.DB
}

// NewBlobStorage creates a blob store on db
func NewBlobStorage(db *badger.DB) *BlobStorage {
	return &BlobStorage{db: db}
}

// PutObject stores data under key
func (b *BlobStorage) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixBlob+key), data)
	})
}

// GetObject returns the object stored under key
func (b *BlobStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixBlob + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	return data, nil
}

// RemoveObjects deletes every key. Missing keys are not an error.
func (b *BlobStorage) RemoveObjects(ctx context.Context, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		err := b.db.Update(func(txn *badger.Txn) error {
			return txn.Delete([]byte(prefixBlob + key))
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// SignedURL is unsupported for embedded storage
func (b *BlobStorage) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "", nil
}
