package doccache

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/doccache/codec"
	pr "github.com/unkn0wn-root/doccache/provider"
	"github.com/unkn0wn-root/doccache/source"
)

type cache struct {
	provider       pr.Provider
	docs           source.DocumentStore
	objects        source.ObjectStore
	codec          c.Codec[Document]
	objectCodec    c.Codec[Document]
	expiry         ExpirySource
	log            Logger
	hooks          Hooks
	enabled        bool
	computeSetCost SetCostFunc
}

func newCache(opts Options) (*cache, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("doccache: provider is required")
	}
	if opts.Documents == nil && opts.Objects == nil {
		return nil, fmt.Errorf("doccache: at least one backing store is required")
	}

	cc := &cache{
		provider: opts.Provider,
		docs:     source.LimitDocuments(opts.Documents, opts.SourceLimit),
		objects:  source.LimitObjects(opts.Objects, opts.SourceLimit),
		enabled:  !opts.Disabled,
	}

	// defaults
	cc.codec = coalesce[c.Codec[Document]](opts.Codec, c.ExtJSON[Document]{Canonical: true})
	cc.objectCodec = coalesce[c.Codec[Document]](opts.ObjectCodec, c.ExtJSON[Document]{})
	cc.expiry = coalesce[ExpirySource](opts.Expiry, StaticExpiry(0))
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	if opts.ComputeSetCost != nil {
		cc.computeSetCost = opts.ComputeSetCost
	} else {
		cc.computeSetCost = func(_ string, raw []byte) int64 { return int64(len(raw)) }
	}
	return cc, nil
}

func (cc *cache) Enabled() bool { return cc.enabled }

// Close releases the cache tier. Backing stores belong to the caller.
func (cc *cache) Close(ctx context.Context) error {
	return cc.provider.Close(ctx)
}

func (cc *cache) GetDocument(ctx context.Context, src SourceType, idOrKey string, docType DocType, bucket string) (Document, bool) {
	key := FormatKey(string(src), string(docType), idOrKey)
	if doc, ok := cc.fromCache(ctx, key); ok {
		cc.log.Debug("document found in cache", Fields{"key": key})
		return doc, true
	}

	var (
		doc Document
		ok  bool
	)
	switch src {
	case SourceMongoDB:
		doc, ok = cc.fromDocuments(ctx, docType, idOrKey)
	case SourceS3:
		// Object payloads are filled under the bucket, not the doc type,
		// while the probe above used the doc type. Callers that want hits
		// on this path pass the bucket as docType too.
		key = FormatKey(string(src), bucket, idOrKey)
		doc, ok = cc.fromObjects(ctx, bucket, idOrKey)
	default:
		// Unknown sources only ever see the cache probe; a miss is absent,
		// not an error.
		cc.log.Debug("unknown source; cache probe only", Fields{"source": string(src), "key": key})
		cc.hooks.UnknownSource(string(src))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	if ttl, filled := cc.set(ctx, doc, key, docType, 0); filled {
		cc.hooks.Filled(key, ttl)
	}
	return doc, true
}

func (cc *cache) SetDocument(ctx context.Context, doc Document, key string, docType DocType, ttl time.Duration) bool {
	_, ok := cc.set(ctx, doc, key, docType, ttl)
	return ok
}

func (cc *cache) set(ctx context.Context, doc Document, key string, docType DocType, override time.Duration) (time.Duration, bool) {
	if !cc.enabled {
		return 0, false
	}
	// read on every write: the default may be reconfigured at runtime
	ttl := ResolveTTL(cc.expiry.DefaultExpiry(), docType, override)

	raw, err := cc.codec.Encode(doc)
	if err != nil {
		cc.log.Error("failed to encode document", Fields{"key": key, "err": err})
		cc.hooks.CacheWriteError(key, err)
		return 0, false
	}
	ok, err := cc.provider.Set(ctx, key, raw, cc.computeSetCost(key, raw), ttl)
	if err != nil {
		cc.log.Error("failed cache set operation", Fields{"key": key, "err": err})
		cc.hooks.CacheWriteError(key, err)
		return 0, false
	}
	if !ok {
		cc.log.Debug("cache set rejected by provider (pressure)", Fields{"key": key})
		cc.hooks.ProviderSetRejected(key)
		return 0, false
	}
	cc.log.Debug("document cached", Fields{"key": key, "ttl": ttl})
	return ttl, true
}

func (cc *cache) fromCache(ctx context.Context, key string) (Document, bool) {
	if !cc.enabled {
		return nil, false
	}
	raw, ok, err := cc.provider.Get(ctx, key)
	if err != nil {
		cc.log.Error("failed cache get operation", Fields{"key": key, "err": err})
		cc.hooks.CacheReadError(key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	doc, err := cc.codec.Decode(raw)
	if err != nil {
		cc.log.Warn("dropping undecodable cache entry", Fields{"key": key, "err": err})
		cc.hooks.CacheDecodeError(key, err)
		_ = cc.provider.Del(ctx, key) // self-heal
		return nil, false
	}
	return doc, true
}

func (cc *cache) fromDocuments(ctx context.Context, docType DocType, id string) (Document, bool) {
	if cc.docs == nil {
		cc.log.Warn("no document store configured", Fields{"docType": string(docType), "id": id})
		return nil, false
	}
	doc, ok, err := cc.docs.FindOne(ctx, string(docType), id)
	if err != nil {
		cc.sourceFailed(&SourceError{Source: SourceMongoDB, Target: string(docType), Key: id, Err: err})
		return nil, false
	}
	return doc, ok
}

func (cc *cache) fromObjects(ctx context.Context, bucket, key string) (Document, bool) {
	if cc.objects == nil {
		cc.log.Warn("no object store configured", Fields{"bucket": bucket, "key": key})
		return nil, false
	}
	cc.log.Debug("get from object store", Fields{"bucket": bucket, "key": key})
	raw, ok, err := cc.objects.GetObject(ctx, bucket, key)
	if err != nil {
		cc.sourceFailed(&SourceError{Source: SourceS3, Target: bucket, Key: key, Err: err})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	doc, err := cc.objectCodec.Decode(raw)
	if err != nil {
		cc.sourceFailed(&SourceError{Source: SourceS3, Target: bucket, Key: key, Err: fmt.Errorf("decode payload: %w", err)})
		return nil, false
	}
	return doc, true
}

func (cc *cache) sourceFailed(err *SourceError) {
	cc.log.Error("failed to get document from backing store", Fields{
		"source": string(err.Source),
		"target": err.Target,
		"key":    err.Key,
		"err":    err.Err,
	})
	cc.hooks.SourceError(err)
}
