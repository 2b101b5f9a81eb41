package bigcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderGetSetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(ctx, Config{LifeWindow: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(ctx) })

	_, ok, err := p.Get(ctx, "s3:bucket:k")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Set(ctx, "s3:bucket:k", []byte("payload"), 1, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	b, ok, err := p.Get(ctx, "s3:bucket:k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), b)

	require.NoError(t, p.Del(ctx, "s3:bucket:k"))
	require.NoError(t, p.Del(ctx, "s3:bucket:k"), "deleting a missing key is not an error")
	_, ok, _ = p.Get(ctx, "s3:bucket:k")
	assert.False(t, ok)
}
