package doccache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pr "github.com/unkn0wn-root/doccache/provider"
	"github.com/unkn0wn-root/doccache/source"
)

type memEntry struct {
	v   []byte
	ttl time.Duration
	exp time.Time // zero => no TTL
}

type memProvider struct {
	mu      sync.Mutex
	m       map[string]memEntry
	getErr  error
	setErr  error
	reject  bool
	gets    int
	sets    int
	deleted []string
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gets++
	if p.getErr != nil {
		return nil, false, p.getErr
	}
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sets++
	if p.setErr != nil {
		return false, p.setErr
	}
	if p.reject {
		return false, nil
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.m[key] = memEntry{v: value, ttl: ttl, exp: exp}
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, key)
	delete(p.m, key)
	return nil
}

func (p *memProvider) Close(_ context.Context) error { return nil }

func (p *memProvider) entry(key string) (memEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.m[key]
	return e, ok
}

func (p *memProvider) put(key string, raw []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = memEntry{v: raw}
}

// fakeDocuments is a collection -> id -> document map that counts lookups.
type fakeDocuments struct {
	mu    sync.Mutex
	data  map[string]map[string]Document
	err   error
	calls int
}

var _ source.DocumentStore = (*fakeDocuments)(nil)

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{data: make(map[string]map[string]Document)}
}

func (f *fakeDocuments) insert(collection string, docs ...Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]Document)
	}
	for _, d := range docs {
		f.data[collection][d["id"].(string)] = d
	}
}

func (f *fakeDocuments) FindOne(_ context.Context, collection, id string) (Document, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, false, f.err
	}
	d, ok := f.data[collection][id]
	return d, ok, nil
}

func (f *fakeDocuments) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeObjects struct {
	mu    sync.Mutex
	data  map[string][]byte // "bucket/key"
	err   error
	calls int
}

var _ source.ObjectStore = (*fakeObjects)(nil)

func newFakeObjects() *fakeObjects { return &fakeObjects{data: make(map[string][]byte)} }

func (f *fakeObjects) GetObject(_ context.Context, bucket, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, false, f.err
	}
	b, ok := f.data[bucket+"/"+key]
	return b, ok, nil
}

type recordingHooks struct {
	mu         sync.Mutex
	readErrs   []string
	decodeErrs []string
	writeErrs  []string
	rejected   []string
	sourceErrs []*SourceError
	unknown    []string
	filled     map[string]time.Duration
}

var _ Hooks = (*recordingHooks)(nil)

func newRecordingHooks() *recordingHooks {
	return &recordingHooks{filled: make(map[string]time.Duration)}
}

func (h *recordingHooks) CacheReadError(k string, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readErrs = append(h.readErrs, k)
}

func (h *recordingHooks) CacheDecodeError(k string, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.decodeErrs = append(h.decodeErrs, k)
}

func (h *recordingHooks) CacheWriteError(k string, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writeErrs = append(h.writeErrs, k)
}

func (h *recordingHooks) ProviderSetRejected(k string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejected = append(h.rejected, k)
}

func (h *recordingHooks) SourceError(err *SourceError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sourceErrs = append(h.sourceErrs, err)
}

func (h *recordingHooks) UnknownSource(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unknown = append(h.unknown, s)
}

func (h *recordingHooks) Filled(k string, ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filled[k] = ttl
}

var errBoom = errors.New("boom")

type fixture struct {
	cache   Cache
	mp      *memProvider
	docs    *fakeDocuments
	objects *fakeObjects
	hooks   *recordingHooks
}

func newFixture(t *testing.T, optsOpt func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		mp:      newMemProvider(),
		docs:    newFakeDocuments(),
		objects: newFakeObjects(),
		hooks:   newRecordingHooks(),
	}
	opts := Options{
		Provider:  f.mp,
		Documents: f.docs,
		Objects:   f.objects,
		Hooks:     f.hooks,
		Expiry:    StaticExpiry(time.Hour),
	}
	if optsOpt != nil {
		optsOpt(&opts)
	}
	cc, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close(context.Background()) })
	f.cache = cc
	return f
}
