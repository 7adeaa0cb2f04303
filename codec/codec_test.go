package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   string `json:"id" yaml:"id" msgpack:"id"`
	Size int    `json:"size" yaml:"size" msgpack:"size"`
}

// YAML documents decode into the map[string]any shape nested lookups expect.
func TestYAMLDecodesToMapping(t *testing.T) {
	raw := []byte("server:\n  host: localhost\n  port: 8080\n")

	m, err := YAML[map[string]any]{}.Decode(raw)
	require.NoError(t, err)

	server, ok := m["server"].(map[string]any)
	require.True(t, ok, "nested mapping should decode as map[string]any")
	assert.Equal(t, "localhost", server["host"])
	assert.Equal(t, 8080, server["port"])
}

func TestLimitCapsDecode(t *testing.T) {
	c := Limit[payload]{Inner: JSON[payload]{}, MaxDecode: 8}

	b, err := c.Encode(payload{ID: "long-enough", Size: 1})
	require.NoError(t, err)
	require.Greater(t, len(b), 8)

	_, err = c.Decode(b)
	assert.ErrorContains(t, err, "payload too large")

	// limit disabled passes through
	c.MaxDecode = 0
	got, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "long-enough", got.ID)
}

// Deterministic CBOR produces identical bytes across encodes.
func TestCBORDeterministic(t *testing.T) {
	c := MustCBOR[map[string]int](true)

	v := map[string]int{"b": 2, "a": 1, "c": 3}
	b1, err := c.Encode(v)
	require.NoError(t, err)
	b2, err := c.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)

	got, err := c.Decode(b1)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestMsgpackRoundTrip(t *testing.T) {
	in := payload{ID: "p1", Size: 7}
	b, err := Msgpack[payload]{}.Encode(in)
	require.NoError(t, err)

	got, err := Msgpack[payload]{}.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestIdentityCodecs(t *testing.T) {
	raw := []byte{0, 1, 2}
	b, err := Bytes{}.Encode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, b)

	s, err := String{}.Decode([]byte("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
}
