package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "alpha", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "k1", &got))
	assert.Equal(t, "alpha", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got payload
	err := c.Get(context.Background(), "absent", &got)
	require.Error(t, err)
	assert.True(t, IsMiss(err))
}

func TestExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", payload{Name: "beta"}, time.Second))
	mr.FastForward(2 * time.Second)

	var got payload
	assert.True(t, IsMiss(c.Get(ctx, "short", &got)))
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", payload{}, time.Minute))
	require.NoError(t, c.Delete(ctx, "k1"))

	var got payload
	assert.True(t, IsMiss(c.Get(ctx, "k1", &got)))

	t.Run("deleting a missing key is not an error", func(t *testing.T) {
		assert.NoError(t, c.Delete(ctx, "never-existed"))
	})
}

func TestDeleteByPattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("users:page:%d", i), payload{Count: i}, time.Minute))
	}
	require.NoError(t, c.Set(ctx, "sessions:all", payload{}, time.Minute))

	require.NoError(t, c.DeleteByPattern(ctx, UserListPattern))

	for i := 1; i <= 3; i++ {
		assert.False(t, mr.Exists(fmt.Sprintf("users:page:%d", i)))
	}
	assert.True(t, mr.Exists("sessions:all"), "other namespaces are untouched")
}

func TestKeys(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, fmt.Sprintf(AuthSessionPattern, "t1"), payload{}, time.Minute))
	require.NoError(t, c.Set(ctx, fmt.Sprintf(AuthSessionPattern, "t2"), payload{}, time.Minute))
	require.NoError(t, c.Set(ctx, "user:42", payload{}, time.Minute))

	keys, err := c.Keys(ctx, "authsession:*")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestPing(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
