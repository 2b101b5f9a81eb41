// Package codec serializes documents for the cache tier and decodes object
// payloads fetched from the object store.
//
// ExtJSON is the default for both: it keeps database-native values intact and
// is readable by non-Go clients sharing the cache tier. CBOR and Msgpack are
// compact alternatives when every reader is a Go process using this package.
package codec

// Codec converts a document to and from the bytes kept in the cache tier.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
