// Package badger persists data rooms in an embedded BadgerDB. It backs
// single-node deployments and the service tests.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"dataroom/internal/domain"
	"dataroom/internal/domain/repositories"
	roomRepo "dataroom/internal/domain/repositories/dataroom"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes. Each record lives under "<prefix><id>" as JSON.
const (
	prefixRoom   = "room/"
	prefixFolder = "folder/"
	prefixFile   = "file/"
	prefixBlob   = "blob/"
)

// Options configures Open
type Options struct {
	// Dir is the database directory; ignored when InMemory is set
	Dir      string
	InMemory bool
}

// Open opens (or creates) the database
func Open(opts Options) (*badger.DB, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB at %s: %w", opts.Dir, err)
	}
	return db, nil
}

// NewStore wires the badger repositories into one persistence collaborator
func NewStore(db *badger.DB, logger *slog.Logger) *roomRepo.Store {
	return &roomRepo.Store{
		Rooms:     &RoomRepository{db: db},
		Folders:   &FolderRepository{db: db},
		Files:     &FileRepository{db: db},
		TxManager: &TransactionManager{db: db, logger: logger},
	}
}

// TransactionManager runs functions inside one read-write badger transaction
type TransactionManager struct {
	db     *badger.DB
	logger *slog.Logger
}

// ExecTx executes fn within a transaction. Nested calls reuse the outer one.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if txnFrom(ctx) != nil {
		return fn(ctx)
	}
	err := tm.db.Update(func(txn *badger.Txn) error {
		return fn(withTxn(ctx, txn))
	})
	if errors.Is(err, badger.ErrConflict) {
		tm.logger.Warn("badger transaction conflict", "error", err)
	}
	return err
}

type txnKey struct{}

func withTxn(ctx context.Context, txn *badger.Txn) context.Context {
	return context.WithValue(ctx, txnKey{}, txn)
}

func txnFrom(ctx context.Context) *badger.Txn {
	txn, _ := ctx.Value(txnKey{}).(*badger.Txn)
	return txn
}

// view runs fn in the transaction carried by ctx, or a fresh read-only one
func view(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if txn := txnFrom(ctx); txn != nil {
		return fn(txn)
	}
	return db.View(fn)
}

// update runs fn in the transaction carried by ctx, or a fresh read-write one
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if txn := txnFrom(ctx); txn != nil {
		return fn(txn)
	}
	return db.Update(fn)
}

func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", key, domain.ErrNotFound)
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func putJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// scan decodes every record under prefix and keeps those accepted by keep
func scan[T any](txn *badger.Txn, prefix string, keep func(*T) bool) ([]T, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	var out []T
	for it.Rewind(); it.Valid(); it.Next() {
		var v T
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		}); err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		if keep(&v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// exists reports whether key is present
func exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}
