// Package source defines the backing stores consulted on a cache miss.
//
// Both stores report a miss as (nil, false, nil). Errors are reserved for
// transport or server failures; the cache logs them and treats the lookup
// as absent.
package source

import "context"

// Document is a schema-free record. Values may be database-native types such
// as primitive.ObjectID or primitive.DateTime.
type Document = map[string]any

// DocumentStore fetches at most one record whose identifier field equals id.
// collection is the document type (e.g. "accounts").
type DocumentStore interface {
	FindOne(ctx context.Context, collection, id string) (Document, bool, error)
}

// ObjectStore fetches a raw object payload.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, bool, error)
}

// DocumentStoreFunc adapts a function to DocumentStore.
type DocumentStoreFunc func(ctx context.Context, collection, id string) (Document, bool, error)

func (f DocumentStoreFunc) FindOne(ctx context.Context, collection, id string) (Document, bool, error) {
	return f(ctx, collection, id)
}

// ObjectStoreFunc adapts a function to ObjectStore.
type ObjectStoreFunc func(ctx context.Context, bucket, key string) ([]byte, bool, error)

func (f ObjectStoreFunc) GetObject(ctx context.Context, bucket, key string) ([]byte, bool, error) {
	return f(ctx, bucket, key)
}
