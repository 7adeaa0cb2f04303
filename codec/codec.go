// Package codec converts values V <-> []byte. The fetch package uses a
// Codec to decode response bodies; JSON is the default.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
