// internal/kv/kv.go

// Package kv is the key-value persistence port behind the cart engine and
// the account store. The backing medium is swappable: in-memory, flat
// files, Redis, or an embedded SQLite database.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
