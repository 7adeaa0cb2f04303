package memoize

// Options tune a Cache. Every field is optional; the zero value gives a
// silent cache with no callbacks.
type Options struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// New constructs an empty Cache keyed by K. Key equality is Go map equality
// over the comparable type K; no normalization is applied.
func New[K comparable, V any](opts Options) *Cache[K, V] {
	return newCache[K, V](opts)
}
