package kv

import (
	"context"
	"errors"
)

// Keys of the session slot. They are always written and removed together.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

var SessionKeys = []string{KeyToken, KeyUser}

var ErrNotFound = errors.New("key not found")

//go:generate go run go.uber.org/mock/mockgen -source=kv.go -destination=mocks/mock.go

// Repository is a durable string key/value store.
type Repository interface {
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (string, error)

	// SetAll writes every entry or none of them.
	SetAll(ctx context.Context, entries map[string]string) error

	// DeleteAll removes the keys; missing keys are not an error.
	DeleteAll(ctx context.Context, keys []string) error
}
