// Package disk provides a BadgerDB-backed width store that survives
// restarts.
package disk

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/go-theft-auto/grid"
)

// keyPrefix keeps grid entries apart from anything else in the database.
const keyPrefix = "grid/"

// Options configures a Store.
type Options struct {
	Dir      string // Database directory; ignored when InMemory
	InMemory bool   // Keep everything in memory (tests)
}

// Store is a grid.KV on top of Badger.
type Store struct {
	db *badger.DB
}

// New opens (or creates) the database described by opts.
func New(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir).WithLogger(nil)
	if opts.InMemory {
		bopts = bopts.WithInMemory(true)
	} else if opts.Dir == "" {
		return nil, errors.New("disk store: directory is required")
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close finishes the DB and allows other processes to open it.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, grid.ErrNotFound
	}
	return out, wrapError(err)
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrapError(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), value)
	}))
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrapError(s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + key))
	}))
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("badger: %w", err)
}
