package kv

import "context"

// Store is a byte-level key-value store. The application keeps whole
// JSON documents under a handful of well-known keys, so the contract
// is deliberately minimal: no transactions, no TTL, no iteration.
type Store interface {
	// Get returns the value stored under key, or errors.ErrKeyNotFound
	// if the key was never written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
