package database

import (
	"context"
	"fmt"

	"art-shop/pkg/utils"
)

// KVStore is the durable, string-valued key-value storage the storefront
// persists its state into. It plays the role of the browser's local storage.
type KVStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects a backend by driver name.
func Open(ctx context.Context, storage utils.StorageConfig, db utils.DatabaseConfig) (KVStore, error) {
	switch storage.Driver {
	case "", "sqlite":
		return OpenSQLite(ctx, storage.Path)
	case "postgres":
		pool, err := InitDB(db)
		if err != nil {
			return nil, err
		}
		kv, err := NewPostgresKV(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return kv, nil
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", storage.Driver)
	}
}
