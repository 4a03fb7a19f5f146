package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewWithClient(client), mr
}

func TestService_SetNX(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	ok, err := svc.SetNX(ctx, "k", 1, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.SetNX(ctx, "k", 1, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(31 * time.Second)

	ok, err = svc.SetNX(ctx, "k", 1, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestService_Delete(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetNX(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("k"))

	require.NoError(t, svc.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestService_Health(t *testing.T) {
	svc, mr := newTestService(t)

	assert.NoError(t, svc.Health(context.Background()))

	mr.Close()
	assert.Error(t, svc.Health(context.Background()))
}

func TestNewRedisService_Unreachable(t *testing.T) {
	svc := NewRedisService(RedisConfig{Host: "127.0.0.1", Port: "1"})

	assert.Nil(t, svc)
}
