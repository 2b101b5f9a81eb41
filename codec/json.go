package codec

import "encoding/json"

// JSON uses encoding/json. Numbers decode as float64 and database-native
// types lose their identity, so prefer ExtJSON for the cache tier.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
