package doccache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/doccache/codec"
	pr "github.com/unkn0wn-root/doccache/provider"
	"github.com/unkn0wn-root/doccache/source"
)

// SetCostFunc weighs an entry for cost-aware providers (ristretto).
type SetCostFunc func(key string, raw []byte) int64

// Cache is the read-through document cache.
// All methods are safe for concurrent use. Concurrent misses on the same key
// each hit the backing store and each refill the cache tier.
type Cache interface {
	Enabled() bool
	Close(context.Context) error

	// GetDocument returns the document for idOrKey, reading through to the
	// backing store selected by src on a miss and filling the cache tier.
	// docType names the collection for SourceMongoDB; bucket is used for
	// SourceS3. Failures of either tier are logged and reported as absent.
	GetDocument(ctx context.Context, src SourceType, idOrKey string, docType DocType, bucket string) (Document, bool)

	// SetDocument writes doc under key. ttl is an optional override
	// (0 => default); the effective expiration is decided by ResolveTTL.
	// Reports whether the cache tier accepted the write.
	SetDocument(ctx context.Context, doc Document, key string, docType DocType, ttl time.Duration) bool
}

// Options configure the cache. Provider and at least one backing store are
// required; everything else has a default.
type Options struct {
	// Required
	Provider pr.Provider

	Documents source.DocumentStore // consulted for SourceMongoDB
	Objects   source.ObjectStore   // consulted for SourceS3

	Codec          c.Codec[Document] // cache tier encoding; nil => canonical Extended JSON
	ObjectCodec    c.Codec[Document] // object payload decoding; nil => Extended JSON
	Expiry         ExpirySource      // nil => no expiration
	Logger         Logger            // nil => NopLogger
	Hooks          Hooks             // nil => NopHooks
	Disabled       bool              // bypass the cache tier, read straight from the stores
	ComputeSetCost SetCostFunc       // default len(raw)
	SourceLimit    source.RateLimit  // zero => unlimited; applied to each backing store
}

func New(opts Options) (Cache, error) {
	return newCache(opts)
}
