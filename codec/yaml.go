package codec

import "gopkg.in/yaml.v3"

// YAML serializes values as YAML documents. The zero value is ready to use.
// Useful when the remote endpoint serves YAML; yaml.v3 decodes mappings into
// map[string]any, so nested.Get and nested.Lookup work on the result.
type YAML[V any] struct{}

func (YAML[V]) Encode(v V) ([]byte, error) { return yaml.Marshal(v) }
func (YAML[V]) Decode(b []byte) (V, error) {
	var v V
	err := yaml.Unmarshal(b, &v)
	return v, err
}
