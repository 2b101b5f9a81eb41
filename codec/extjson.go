package codec

import (
	"bytes"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

// ExtJSON is a Codec using MongoDB Extended JSON. Database-native values keep
// their type across a round trip: ObjectIDs, dates, int32 vs int64, decimals
// and binary are tagged ({"$oid": ...}, {"$date": ...}) instead of being
// flattened to strings or floats.
//
// Canonical controls the encoding only. Decode accepts canonical, relaxed and
// plain JSON input, so entries written by other clients still load. Nested
// documents decode as primitive.M and arrays as primitive.A, the same shapes
// the MongoDB driver returns for a bson.M result.
type ExtJSON[V any] struct {
	Canonical bool
}

var _ Codec[map[string]any] = ExtJSON[map[string]any]{}

func (c ExtJSON[V]) Encode(v V) ([]byte, error) {
	return bson.MarshalExtJSON(v, c.Canonical, false)
}

func (c ExtJSON[V]) Decode(b []byte) (V, error) {
	var v V
	vr, err := bsonrw.NewExtJSONValueReader(bytes.NewReader(b), false)
	if err != nil {
		return v, fmt.Errorf("extjson decode: %w", err)
	}
	dec, err := bson.NewDecoder(vr)
	if err != nil {
		return v, fmt.Errorf("extjson decode: %w", err)
	}
	dec.DefaultDocumentM()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("extjson decode: %w", err)
	}
	return v, nil
}
