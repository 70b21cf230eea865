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

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCacheFromClient(client), mr
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Plate string `json:"plate"`
		Count int64  `json:"count"`
	}

	require.NoError(t, c.Set(ctx, "vehicle_plate:MH12AB1234", payload{Plate: "MH12AB1234", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "vehicle_plate:MH12AB1234", &got))
	assert.Equal(t, "MH12AB1234", got.Plate)
	assert.Equal(t, int64(3), got.Count)
}

func TestGetMissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	var dest string
	err := c.Get(context.Background(), "nope", &dest)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSetNX(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "lock", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "lock", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}
