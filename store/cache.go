package store

import (
	"context"
	"errors"
)

// CatalogCache is a bounded side-interface for catalog reads. Callers must
// treat every error, including ErrCacheMiss, as "go to the store".
type CatalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
