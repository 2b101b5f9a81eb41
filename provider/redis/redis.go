package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/doccache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// FromURL builds a provider that owns a client parsed from a redis:// or
// rediss:// URL (e.g. REDIS_DSN).
func FromURL(url string) (*Redis, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return New(Config{Client: goredis.NewClient(opt), CloseClient: true})
}

// Ping checks connectivity; useful at process start where a missing cache
// tier should be reported early even though lookups tolerate it.
func (p *Redis) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

// Set writes with SET EX/PX when ttl > 0, plain SET otherwise.
func (p *Redis) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	if err := p.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
