// Package store provides key-value backends for league data: a directory of
// json files, an in-memory map, a SQLite table and an S3 compatible bucket.
//
// Every backend stores opaque blobs and reports a missing key with an error
// wrapping fs.ErrNotExist.
package store

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
)

// Store is the key-value interface implemented by every backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

func notFound(key string) error {
	return fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
}

// validKey rejects keys that could escape a namespace.
func validKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
