package doccache

import "time"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// The cache tier could not be read; the lookup continued as a miss.
	CacheReadError(key string, err error)

	// A cached entry did not decode and was deleted.
	CacheDecodeError(key string, err error)

	// A document could not be encoded or written to the cache tier.
	CacheWriteError(key string, err error)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(key string)

	// A backing store failed; the lookup returned absent.
	SourceError(err *SourceError)

	// GetDocument was called with a source it has no backing store for.
	UnknownSource(source string)

	// A document fetched from a backing store was written to the cache tier.
	// ttl == 0 means no expiration.
	Filled(key string, ttl time.Duration)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CacheReadError(string, error)   {}
func (NopHooks) CacheDecodeError(string, error) {}
func (NopHooks) CacheWriteError(string, error)  {}
func (NopHooks) ProviderSetRejected(string)     {}
func (NopHooks) SourceError(*SourceError)       {}
func (NopHooks) UnknownSource(string)           {}
func (NopHooks) Filled(string, time.Duration)   {}
