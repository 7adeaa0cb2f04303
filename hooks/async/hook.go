// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/memoize"
//	"github.com/unkn0wn-root/memoize/fetch"
//	"github.com/unkn0wn-root/memoize/hooks/async"
//	redisprov "github.com/unkn0wn-root/memoize/provider/redis"
//	"github.com/unkn0wn-root/memoize/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HitEvery:  100, // sample logs: ~every 100th hit
//	    MissEvery: 1,   // log every miss
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	users := memoize.New[string, User](memoize.Options{Hooks: hooks})
//
//	cache, _ := redisprov.New(redisprov.Config{Client: rdb})
//	client, _ := fetch.New[User](fetch.Options[User]{
//	    Cache:     cache,
//	    Namespace: "app:prod:user",
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/memoize"
)

type Hooks struct {
	inner memoize.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ memoize.Hooks = (*Hooks)(nil)

func New(inner memoize.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit()                 { h.try(func() { h.inner.Hit() }) }
func (h *Hooks) Miss()                { h.try(func() { h.inner.Miss() }) }
func (h *Hooks) Failure(err error)    { h.try(func() { h.inner.Failure(err) }) }
func (h *Hooks) CacheHit(k string)    { h.try(func() { h.inner.CacheHit(k) }) }
func (h *Hooks) CacheMiss(k string)   { h.try(func() { h.inner.CacheMiss(k) }) }
func (h *Hooks) SetRejected(k string) { h.try(func() { h.inner.SetRejected(k) }) }
func (h *Hooks) SelfHeal(k, r string) { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) FetchError(u string, err error) {
	h.try(func() { h.inner.FetchError(u, err) })
}
