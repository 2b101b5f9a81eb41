// Package ristretto is a cost-aware in-process cache tier backed by
// dgraph-io/ristretto. Per-entry TTLs are honoured.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/doccache/provider"
)

type Provider struct {
	c *rc.Cache
	// sync makes Set wait for the write buffer to drain so that an
	// immediate Get observes the value.
	sync bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// SyncWrites trades write throughput for read-your-writes.
	SyncWrites bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, sync: cfg.SyncWrites}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set returns ok=false when ristretto's admission policy drops the write.
func (p *Provider) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	ok := p.c.SetWithTTL(key, value, cost, ttl)
	if ok && p.sync {
		p.c.Wait()
	}
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto counters; nil unless Config.Metrics is set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
