// Package bigcache is an in-process cache tier backed by allegro/bigcache.
//
// BigCache evicts by a global LifeWindow and has no per-entry TTL, so the
// expiration policy cannot exempt individual document types here. Use it for
// single-process deployments and tests where that is acceptable.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/doccache/provider"
)

type Provider struct {
	c *bc.BigCache
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(ctx context.Context, cfg Config) (*Provider, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set ignores ttl; entries live for the configured LifeWindow.
func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	if err := p.c.Set(key, value); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	err := p.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}
