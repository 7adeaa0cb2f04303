package codec

import "encoding/json"

// JSON is the default codec. The zero value is ready to use.
// Decoding into map[string]any produces the mapping shape the nested
// package walks.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
