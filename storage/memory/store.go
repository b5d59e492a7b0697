// Package memory provides an in-process slot store.
package memory

import (
	"context"
	"sync"

	"github.com/they4kman/prizegrid/storage"
)

// Store keeps slot values in a map. The zero value is ready to use.
type Store struct {
	mu     sync.Mutex
	values map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: map[string][]byte{}}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := storage.CheckKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put replaces the value stored under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := storage.CheckKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		s.values = map[string][]byte{}
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}
