package memoize

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// Both the memoizer and the fetch client call them on hot paths.
type Hooks interface {
	// Do served a stored result without running the computation.
	Hit()

	// Do found no stored result and will run the computation.
	Miss()

	// The computation failed; nothing was stored.
	Failure(err error)

	// A cached response was served. storageKey is the hashed provider key.
	CacheHit(storageKey string)

	// No usable cached response; the client will fetch.
	CacheMiss(storageKey string)

	// A cached response was deleted by the client on read.
	// reason ∈ {"corrupt", "body_decode"}
	SelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	SetRejected(storageKey string)

	// The HTTP request or the body read failed.
	FetchError(url string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit()                     {}
func (NopHooks) Miss()                    {}
func (NopHooks) Failure(error)            {}
func (NopHooks) CacheHit(string)          {}
func (NopHooks) CacheMiss(string)         {}
func (NopHooks) SelfHeal(string, string)  {}
func (NopHooks) SetRejected(string)       {}
func (NopHooks) FetchError(string, error) {}
