// Package nested looks up values in nested map[K]any trees, the shape
// encoding/json and yaml.v3 produce when decoding documents into any.
package nested

import (
	"fmt"
	"strings"
)

// KeyError reports the single key at which a lookup stopped: either the
// current mapping has no entry for it, or the value reached so far is not
// a mapping and the key cannot be applied. Reach it with errors.As.
type KeyError[K comparable] struct {
	Key K
}

func (e *KeyError[K]) Error() string {
	return fmt.Sprintf("nested: key %v not found", e.Key)
}

// Get walks m by applying the path keys in order and returns the final
// value, which may itself be a mapping. An empty path returns m.
//
// The walk fails with a *KeyError carrying the key of the offending step
// when that key is missing from the current mapping, or when the current
// value is not a mapping at all.
func Get[K comparable](m map[K]any, path ...K) (any, error) {
	var cur any = m
	for _, k := range path {
		mm, ok := cur.(map[K]any)
		if !ok {
			return nil, &KeyError[K]{Key: k}
		}
		cur, ok = mm[k]
		if !ok {
			return nil, &KeyError[K]{Key: k}
		}
	}
	return cur, nil
}

// As walks like Get and asserts the final value to T.
func As[T any, K comparable](m map[K]any, path ...K) (T, error) {
	var zero T
	v, err := Get(m, path...)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("nested: value at %v is %T, not %T", path, v, zero)
	}
	return t, nil
}

// Lookup resolves a dotted path ("a.b.c") against a string-keyed mapping.
// An empty path returns m. Keys containing dots cannot be addressed this
// way; use Get with explicit keys instead.
func Lookup(m map[string]any, path string) (any, error) {
	if path == "" {
		return m, nil
	}
	return Get(m, strings.Split(path, ".")...)
}
