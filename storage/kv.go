// Package storage provides the durable string-keyed store backing
// session and CSRF state. The store knows nothing about expiry; timeout
// logic lives in the session manager.
package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("storage: key not found")

type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
