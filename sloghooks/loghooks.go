package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/memoize"
)

type Options struct {
	// Sampling to avoid floods on the hot events; 0/1 = log all.
	HitEvery      uint64
	MissEvery     uint64
	CacheHitEvery uint64
	// Optional key/url redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr      atomic.Uint64
	missCtr     atomic.Uint64
	cacheHitCtr atomic.Uint64
}

var _ memoize.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit() {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("memoize.hit")
}

func (h *Hooks) Miss() {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("memoize.miss")
}

func (h *Hooks) Failure(err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("memoize.failure",
		"err", err)
}

func (h *Hooks) CacheHit(storageKey string) {
	if h.l == nil || !sample(h.opts.CacheHitEvery, &h.cacheHitCtr) {
		return
	}
	h.l.Debug("memoize.cache_hit",
		"key", h.redact(storageKey))
}

func (h *Hooks) CacheMiss(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Debug("memoize.cache_miss",
		"key", h.redact(storageKey))
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("memoize.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) SetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("memoize.set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) FetchError(url string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("memoize.fetch_error",
		"url", h.redact(url),
		"err", err)
}
