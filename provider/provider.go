// Package provider defines the cache tier used by doccache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// bytes previously passed to Set for a key. Entries are plain serialized
// documents under "{source}:{type-or-bucket}:{id}" keys, so other processes
// (including non-Go clients) can read and write the same keyspace.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. ttl <= 0 means the entry does not expire.
	// cost may be ignored if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
