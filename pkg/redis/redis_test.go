package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (IRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewRedis(RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewRedisValidation(t *testing.T) {
	_, err := NewRedis(RedisConfig{Port: 6379})
	assert.ErrorIs(t, err, ErrHostRequired)

	_, err = NewRedis(RedisConfig{Host: "localhost", Port: 70000})
	assert.ErrorIs(t, err, ErrInvalidPort)
}

func TestNewRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, _ := strconv.Atoi(mr.Port())
	mr.Close()

	_, err := NewRedis(RedisConfig{Host: mr.Host(), Port: port})
	assert.Error(t, err)
}

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestRedis(t)

	require.NoError(t, client.Set(ctx, "k", []byte(`{"id":"job-1"}`), time.Minute))
	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"job-1"}`, string(got))

	mr.FastForward(2 * time.Minute)
	_, err = client.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, client.Set(ctx, "k2", []byte("v"), 0))
	require.NoError(t, client.Delete(ctx, "k2"))
	assert.False(t, mr.Exists("k2"))
	require.NoError(t, client.Delete(ctx))

	require.NoError(t, client.Ping(ctx))
}
