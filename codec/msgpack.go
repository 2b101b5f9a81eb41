package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack stores documents as MessagePack. Map keys are sorted on encode, so
// the same document always produces the same cache entry. Nested documents
// decode as map[string]any. The zero value is ready to use.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("msgpack decode: %w", err)
	}
	return v, nil
}
