// Package asynchook moves Hooks callbacks off the request path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ReadErrorEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := doccache.New(doccache.Options{
//	    Provider:  provider,
//	    Documents: store,
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
//
// Events are dropped when the queue is full.
package asynchook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/doccache"
)

type Hooks struct {
	inner   doccache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ doccache.Hooks = (*Hooks)(nil)

func New(inner doccache.Hooks, workers, qlen int) *Hooks {
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

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) CacheReadError(k string, err error) { h.try(func() { h.inner.CacheReadError(k, err) }) }
func (h *Hooks) CacheDecodeError(k string, err error) {
	h.try(func() { h.inner.CacheDecodeError(k, err) })
}
func (h *Hooks) CacheWriteError(k string, err error) {
	h.try(func() { h.inner.CacheWriteError(k, err) })
}
func (h *Hooks) ProviderSetRejected(k string)          { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) SourceError(err *doccache.SourceError) { h.try(func() { h.inner.SourceError(err) }) }
func (h *Hooks) UnknownSource(s string)                { h.try(func() { h.inner.UnknownSource(s) }) }
func (h *Hooks) Filled(k string, ttl time.Duration)    { h.try(func() { h.inner.Filled(k, ttl) }) }
