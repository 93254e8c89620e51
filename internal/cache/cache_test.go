package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return NewFromRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestClient_SetGetDelete(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_TTLExpires(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	got, _ := c.Get(ctx, "k")
	assert.Nil(t, got)
}

func TestClient_IncrWindow(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, ok := c.IncrWindow(ctx, "counter", time.Minute)
		require.True(t, ok)
		assert.Equal(t, i, n)
	}

	mr.FastForward(time.Minute + time.Second)
	n, ok := c.IncrWindow(ctx, "counter", time.Minute)
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
}

func TestClient_FailsSafeWhenUnavailable(t *testing.T) {
	c, mr := newTestClient(t)
	mr.Close()
	ctx := context.Background()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.SetStrict(ctx, "k", []byte("v"), time.Minute))

	_, ok := c.IncrWindow(ctx, "counter", time.Minute)
	assert.False(t, ok)
	assert.Error(t, c.Ping(ctx))
}

func TestClient_NilIsNoop(t *testing.T) {
	var c *Client
	ctx := context.Background()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestClient_SetStrict(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.SetStrict(ctx, "k", []byte("v"), time.Minute))
	got, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("v"), got)

	mr.SetError("READONLY replica")
	assert.Error(t, c.SetStrict(ctx, "k", []byte("w"), time.Minute))
	assert.NoError(t, c.Set(ctx, "k", []byte("w"), time.Minute))

	var unset *Client
	assert.NoError(t, unset.SetStrict(ctx, "k", []byte("v"), time.Minute))
}
