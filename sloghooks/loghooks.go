// Package sloghooks logs doccache hook events with log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/doccache"
)

type Options struct {
	// Sampling to avoid floods during a cache-tier outage; 0/1 = log all.
	ReadErrorEvery uint64
	FillEvery      uint64
	// Optional key redactor. Defaults to SHA-256 prefix; ids in keys may be
	// account identifiers.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	readErrCtr atomic.Uint64
	fillCtr    atomic.Uint64
}

var _ doccache.Hooks = (*Hooks)(nil)

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

func (h *Hooks) CacheReadError(key string, err error) {
	if h.l == nil || !sample(h.opts.ReadErrorEvery, &h.readErrCtr) {
		return
	}
	h.l.Warn("doccache.cache_read_error",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) CacheDecodeError(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("doccache.cache_decode_error",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) CacheWriteError(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("doccache.cache_write_error",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) ProviderSetRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("doccache.provider_set_rejected",
		"key", h.redact(key))
}

func (h *Hooks) SourceError(err *doccache.SourceError) {
	if h.l == nil {
		return
	}
	h.l.Error("doccache.source_error",
		"source", string(err.Source),
		"target", err.Target,
		"key", h.redact(err.Key),
		"err", err.Err)
}

func (h *Hooks) UnknownSource(source string) {
	if h.l == nil {
		return
	}
	h.l.Warn("doccache.unknown_source",
		"source", source)
}

func (h *Hooks) Filled(key string, ttl time.Duration) {
	if h.l == nil || !sample(h.opts.FillEvery, &h.fillCtr) {
		return
	}
	h.l.Debug("doccache.filled",
		"key", h.redact(key),
		"ttl", ttl)
}
