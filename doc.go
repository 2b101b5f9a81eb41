// Package doccache is a read-through cache for documents that live in a
// document database (MongoDB) or an object store (S3), with a key-value store
// (Redis by default) as the cache tier.
//
// Components:
//   - Provider: byte store with TTL (Redis, BigCache, Ristretto).
//   - source.DocumentStore / source.ObjectStore: the backing stores consulted on a miss.
//   - Codec: (de)serializes documents; canonical Extended JSON by default so
//     ObjectIDs and dates survive the cache.
//   - ExpirySource: the live, process-wide default expiration.
//
// Keys:
//
//	mongodb:<docType>:<id>   - documents from the database
//	s3:<bucket>:<key>        - documents decoded from object payloads
//
// Segments are joined verbatim; a ':' inside a segment is not escaped.
//
// Read path:
//
//	doc, ok := cache.GetDocument(ctx, doccache.SourceMongoDB, id, doccache.DocMessages, "")
//	body := doccache.Decrypt(doc["body"].(string), accountKey)
//
// Cache and backing-store failures are logged and reported as a miss; they are
// never returned to the caller.
package doccache
