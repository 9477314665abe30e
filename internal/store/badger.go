package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is an embedded on-disk backend.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens the database in dir. An empty dir opens an in-memory
// database.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(scope, key string) []byte {
	return []byte(scope + "/" + key)
}

func (s *BadgerStore) Get(_ context.Context, scope, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(
		func(txn *badger.Txn) error {
			item, err := txn.Get(badgerKey(scope, key))
			if err != nil {
				return err
			}
			out, err = item.ValueCopy(nil)
			return err
		},
	)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return out, err
}

func (s *BadgerStore) Set(_ context.Context, scope, key string, value []byte) error {
	return s.db.Update(
		func(txn *badger.Txn) error {
			return txn.Set(badgerKey(scope, key), value)
		},
	)
}

func (s *BadgerStore) Delete(_ context.Context, scope, key string) error {
	return s.db.Update(
		func(txn *badger.Txn) error {
			return txn.Delete(badgerKey(scope, key))
		},
	)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
