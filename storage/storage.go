// Package storage defines the durable key-value slot the game state lives in.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound indicates a requested key has never been written.
var ErrNotFound = errors.New("record not found")

// ErrKeyRequired indicates an empty slot key.
var ErrKeyRequired = errors.New("slot key is required")

// Slot is a string-keyed store of whole values. Values are read and written
// as a unit; there are no partial updates.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// CheckKey returns the trimmed key, or ErrKeyRequired if it is empty.
func CheckKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrKeyRequired
	}
	return key, nil
}
