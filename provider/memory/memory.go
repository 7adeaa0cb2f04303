// Package memory implements an in-process Provider backed by a plain map.
// The default choice when responses should not outlive the process.
package memory

import (
	"context"
	"sync"
	"time"

	pr "github.com/unkn0wn-root/memoize/provider"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

// Provider keeps entries in-process. Expired entries are dropped lazily on
// Get; an optional cleanup loop also prunes them in the background.
type Provider struct {
	mu sync.RWMutex
	m  map[string]entry

	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	// CleanupInterval starts a background sweep removing expired entries
	// every interval. 0 disables the loop; expiry still applies on Get.
	CleanupInterval time.Duration
}

func New(cfg Config) *Provider {
	p := &Provider{m: make(map[string]entry)}
	if cfg.CleanupInterval > 0 {
		p.ticker = time.NewTicker(cfg.CleanupInterval)
		p.stopCh = make(chan struct{})
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-p.ticker.C:
					p.sweep()
				case <-p.stopCh:
					return
				}
			}
		}()
	}
	return p
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.RLock()
	e, ok := p.m[key]
	p.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		p.mu.Lock()
		// re-check; a fresh Set may have replaced the entry
		if cur, ok := p.m[key]; ok && cur.expired(time.Now()) {
			delete(p.m, key)
		}
		p.mu.Unlock()
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.mu.Lock()
	p.m[key] = entry{v: value, exp: exp}
	p.mu.Unlock()
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
	return nil
}

// Close stops the cleanup loop. Safe to call multiple times.
func (p *Provider) Close(_ context.Context) error {
	p.once.Do(func() {
		if p.stopCh != nil {
			close(p.stopCh)
			p.ticker.Stop() // stop ticker before waiting
			p.wg.Wait()
		}
	})
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (p *Provider) Len() int {
	p.mu.RLock()
	n := len(p.m)
	p.mu.RUnlock()
	return n
}

func (p *Provider) sweep() {
	now := time.Now()
	p.mu.Lock()
	for k, e := range p.m {
		if e.expired(now) {
			delete(p.m, k)
		}
	}
	p.mu.Unlock()
}

func (e entry) expired(now time.Time) bool {
	return !e.exp.IsZero() && e.exp.Before(now)
}
