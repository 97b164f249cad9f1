package fantaleague

import (
	"bytes"
	"context"
	"fmt"
)

// CatalogKey is the storage key of the catalog blob.
const CatalogKey = "bbslData"

// Store is a key-value store of serialized blobs. Get returns an error
// wrapping fs.ErrNotExist for a missing key.
//
// Implementations live in the store package.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte) error
}

// Repository loads and saves the whole catalog. Every mutating League
// operation ends with a Save.
type Repository interface {
	Load(ctx context.Context) (*Catalog, error)
	Save(ctx context.Context, c *Catalog) error
}

// NewRepository returns a Repository keeping the catalog under CatalogKey in s.
func NewRepository(s Store) Repository {
	return &storeRepository{store: s, key: CatalogKey}
}

type storeRepository struct {
	store Store
	key   string
}

func (r *storeRepository) Load(ctx context.Context) (*Catalog, error) {
	blob, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", r.key, err)
	}
	c, err := DecodeCatalog(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", r.key, err)
	}
	return c, nil
}

func (r *storeRepository) Save(ctx context.Context, c *Catalog) error {
	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, c); err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key, buf.Bytes()); err != nil {
		return fmt.Errorf("could not save %q: %w", r.key, err)
	}
	return nil
}
