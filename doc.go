// Package memoize implements compute-once caching for keyed computations,
// plus companion packages for the data those computations usually produce.
//
// Components:
//   - Cache[K, V]: keyed memoizer. Each key is computed at most once; the
//     stored result is returned to every later call. Concurrent first calls
//     for a key share a single execution. Failed computations store nothing.
//   - Func / Wrap / Wrap2 / Wrap3: combinators that wrap plain functions,
//     each wrapper owning a private Cache.
//   - nested: path lookups into map[K]any trees with a typed key error.
//   - drill: path expressions over raw JSON documents (tidwall/gjson).
//   - fetch: HTTP GET of remote documents decoded through a Codec[T], with
//     an optional Provider-backed response cache and request coalescing.
//
// Entries live as long as their Cache. There is no eviction, no expiry, and
// no invalidation; when bounded or expiring storage is needed, put the fetch
// package's Provider-backed response cache in front instead.
//
// Usage:
//
//	lookup := memoize.Wrap(func(id string) (User, error) {
//	    return loadUser(id)
//	})
//	u, err := lookup("u1") // runs loadUser
//	u, err = lookup("u1")  // cached; loadUser is not called again
package memoize
