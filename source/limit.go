package source

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a lookup could not get a token in time.
var ErrRateLimited = errors.New("source: rate limited")

// RateLimit bounds how often a backing store is hit on cache misses.
// Concurrent misses on the same key all reach the store, so a limiter is
// the only thing standing between a cold cache and the database.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
	// WaitTimeout is how long a lookup may wait for a token.
	// 0 => fail immediately when no token is available.
	WaitTimeout time.Duration
}

type limiter struct {
	l    *rate.Limiter
	wait time.Duration
}

func newLimiter(cfg RateLimit) *limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &limiter{
		l:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		wait: cfg.WaitTimeout,
	}
}

func (l *limiter) acquire(ctx context.Context) error {
	if l.wait <= 0 {
		if !l.l.Allow() {
			return ErrRateLimited
		}
		return nil
	}
	wctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()
	if err := l.l.Wait(wctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrRateLimited
	}
	return nil
}

// LimitDocuments wraps s with a rate limiter. A non-positive rate returns s unchanged.
func LimitDocuments(s DocumentStore, cfg RateLimit) DocumentStore {
	l := newLimiter(cfg)
	if l == nil || s == nil {
		return s
	}
	return DocumentStoreFunc(func(ctx context.Context, collection, id string) (Document, bool, error) {
		if err := l.acquire(ctx); err != nil {
			return nil, false, err
		}
		return s.FindOne(ctx, collection, id)
	})
}

// LimitObjects wraps s with a rate limiter. A non-positive rate returns s unchanged.
func LimitObjects(s ObjectStore, cfg RateLimit) ObjectStore {
	l := newLimiter(cfg)
	if l == nil || s == nil {
		return s
	}
	return ObjectStoreFunc(func(ctx context.Context, bucket, key string) ([]byte, bool, error) {
		if err := l.acquire(ctx); err != nil {
			return nil, false, err
		}
		return s.GetObject(ctx, bucket, key)
	})
}
