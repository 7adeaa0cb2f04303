package memoize

// Func memoizes a zero-argument computation. The wrapper owns a private
// Cache, so independent wrappers never share results even when they wrap
// the same function. The first call runs fn and stores its result; every
// later call returns the stored result without running fn again. If fn
// fails nothing is stored and the next call runs it again.
func Func[V any](fn func() (V, error), opts ...Options) func() (V, error) {
	m := New[struct{}, V](firstOpt(opts))
	return func() (V, error) {
		return m.Do(struct{}{}, fn)
	}
}

// Wrap memoizes a one-argument computation keyed by its argument.
func Wrap[K comparable, V any](fn func(K) (V, error), opts ...Options) func(K) (V, error) {
	m := New[K, V](firstOpt(opts))
	return func(k K) (V, error) {
		return m.Do(k, func() (V, error) { return fn(k) })
	}
}

// Wrap2 memoizes a two-argument computation keyed by both arguments.
func Wrap2[K1, K2 comparable, V any](fn func(K1, K2) (V, error), opts ...Options) func(K1, K2) (V, error) {
	m := New[key2[K1, K2], V](firstOpt(opts))
	return func(a K1, b K2) (V, error) {
		return m.Do(key2[K1, K2]{a, b}, func() (V, error) { return fn(a, b) })
	}
}

// Wrap3 memoizes a three-argument computation keyed by all three arguments.
func Wrap3[K1, K2, K3 comparable, V any](fn func(K1, K2, K3) (V, error), opts ...Options) func(K1, K2, K3) (V, error) {
	m := New[key3[K1, K2, K3], V](firstOpt(opts))
	return func(a K1, b K2, c K3) (V, error) {
		return m.Do(key3[K1, K2, K3]{a, b, c}, func() (V, error) { return fn(a, b, c) })
	}
}

// key2 and key3 turn argument tuples into comparable map keys.
type key2[K1, K2 comparable] struct {
	a K1
	b K2
}

type key3[K1, K2, K3 comparable] struct {
	a K1
	b K2
	c K3
}

func firstOpt(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options{}
}
