// Package fetch retrieves documents over HTTP and decodes their bodies
// through a codec (JSON by default). A Client can sit in front of a
// provider.Provider so repeated Gets for the same URL are served from the
// cache, and concurrent Gets for the same URL share a single request.
//
// The client does not inspect status codes: whatever body the endpoint
// returns is decoded (and cached). Wrap the Doer if you need status
// handling, and keep retries outside too.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/unkn0wn-root/memoize"
	"github.com/unkn0wn-root/memoize/codec"
	"github.com/unkn0wn-root/memoize/internal/util"
	"github.com/unkn0wn-root/memoize/internal/wire"
	pr "github.com/unkn0wn-root/memoize/provider"
)

// Doer executes a single HTTP request. *http.Client satisfies it; tests
// substitute fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configure a Client. The zero value is usable: no cache, default
// transport, JSON decoding.
type Options[T any] struct {
	// Client executes requests. If nil, a plain http.Client is used.
	Client Doer

	// Codec decodes response bodies into T. If nil, codec.JSON[T] is used.
	Codec codec.Codec[T]

	// Header is applied to every outgoing request (e.g. Authorization).
	Header http.Header

	// Cache stores raw response bodies between calls. Nil disables caching.
	Cache pr.Provider

	// Namespace isolates this client's keys inside a shared Cache.
	// Required when Cache is set.
	Namespace string

	// CacheTTL bounds cached responses; <= 0 means no expiry.
	CacheTTL time.Duration

	// Logger for operational logs. If nil, NopLogger is used.
	Logger memoize.Logger

	// Hooks observe cache and fetch events. If nil, NopHooks is used.
	Hooks memoize.Hooks
}

// Client fetches and decodes documents of type T.
type Client[T any] struct {
	client Doer
	codec  codec.Codec[T]
	header http.Header
	cache  pr.Provider
	ns     string
	ttl    time.Duration
	log    memoize.Logger
	hooks  memoize.Hooks
	flight singleflight.Group
}

// New builds a Client from opts.
func New[T any](opts Options[T]) (*Client[T], error) {
	if opts.Cache != nil && opts.Namespace == "" {
		return nil, fmt.Errorf("fetch: namespace is required when a cache is set")
	}

	c := &Client[T]{
		client: opts.Client,
		codec:  opts.Codec,
		header: opts.Header,
		cache:  opts.Cache,
		ns:     opts.Namespace,
		ttl:    opts.CacheTTL,
		log:    opts.Logger,
		hooks:  opts.Hooks,
	}

	// defaults
	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.codec == nil {
		c.codec = codec.JSON[T]{}
	}
	if c.log == nil {
		c.log = memoize.NopLogger{}
	}
	if c.hooks == nil {
		c.hooks = memoize.NopHooks{}
	}

	return c, nil
}

// Get returns the document at url, decoded into T.
//
// With a cache configured, a stored response is served without touching the
// network. Otherwise one GET is issued; concurrent Gets for the same URL
// join that request instead of issuing their own, and the request runs on
// the first caller's context.
//
// The response body is decoded regardless of status code. Transport
// failures, body-read failures, and decode failures are returned wrapped
// with the URL.
func (c *Client[T]) Get(ctx context.Context, url string) (T, error) {
	var zero T
	if v, ok := c.cached(ctx, url); ok {
		return v, nil
	}

	body, err, _ := c.flight.Do(url, func() (any, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return zero, err
	}

	v, err := c.codec.Decode(body.([]byte))
	if err != nil {
		return zero, fmt.Errorf("fetch %s: decode response: %w", url, err)
	}
	return v, nil
}

// Close releases the cache provider, if any.
func (c *Client[T]) Close(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close(ctx)
}

// cached tries to serve url from the cache. Any unusable entry is deleted
// (self-heal) and reported as a miss.
func (c *Client[T]) cached(ctx context.Context, url string) (T, bool) {
	var zero T
	if c.cache == nil {
		return zero, false
	}

	sk := c.storageKey(url)
	raw, ok, err := c.cache.Get(ctx, sk)
	if err != nil {
		c.log.Warn("cache read failed", memoize.Fields{"key": sk, "err": err})
		return zero, false
	}
	if !ok {
		c.hooks.CacheMiss(sk)
		return zero, false
	}

	fetchedAt, body, err := wire.Decode(raw)
	if err != nil {
		_ = c.cache.Del(ctx, sk) // self-heal corrupt
		c.hooks.SelfHeal(sk, "corrupt")
		c.hooks.CacheMiss(sk)
		return zero, false
	}

	v, err := c.codec.Decode(body)
	if err != nil {
		_ = c.cache.Del(ctx, sk) // self-heal
		c.hooks.SelfHeal(sk, "body_decode")
		c.hooks.CacheMiss(sk)
		return zero, false
	}

	c.hooks.CacheHit(sk)
	c.log.Debug("cache hit", memoize.Fields{"key": sk, "age": time.Since(fetchedAt)})
	return v, true
}

// fetch performs one GET and returns the raw body. On success the body is
// written back to the cache (best effort).
func (c *Client[T]) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: build request: %w", url, err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.hooks.FetchError(url, err)
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.hooks.FetchError(url, err)
		return nil, fmt.Errorf("fetch %s: read response: %w", url, err)
	}

	c.store(ctx, url, body)
	return body, nil
}

// store writes body to the cache. Failures are logged, never returned: a
// broken cache must not break the fetch.
func (c *Client[T]) store(ctx context.Context, url string, body []byte) {
	if c.cache == nil {
		return
	}

	sk := c.storageKey(url)
	ok, err := c.cache.Set(ctx, sk, wire.Encode(time.Now(), body), c.ttl)
	if err != nil {
		c.log.Warn("cache write failed", memoize.Fields{"key": sk, "err": err})
		return
	}
	if !ok {
		c.hooks.SetRejected(sk)
		c.log.Debug("cache write rejected by provider (pressure)", memoize.Fields{"key": sk})
	}
}

func (c *Client[T]) storageKey(url string) string {
	return util.ResponseKey("fetch:"+c.ns, url)
}

// Get fetches url once with http.DefaultClient and decodes the JSON body
// into T. It is the uncached convenience form of Client.Get.
func Get[T any](ctx context.Context, url string) (T, error) {
	c := &Client[T]{
		client: http.DefaultClient,
		codec:  codec.JSON[T]{},
		log:    memoize.NopLogger{},
		hooks:  memoize.NopHooks{},
	}
	return c.Get(ctx, url)
}
