package redis_test

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port

	client, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, client.RawClient().Set(ctx, "key", "value", 0).Err())
	got, err := mr.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	assert.NoError(t, client.Close(ctx))
}

func TestNewClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	mr.Close()

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port

	client, err := redis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), redis.ErrConnect)
}

func TestDefaultConfig(t *testing.T) {
	cfg := redis.DefaultConfig()
	assert.Equal(t, redis.DefaultHost, cfg.Host)
	assert.Equal(t, redis.DefaultPort, cfg.Port)
	assert.Equal(t, redis.DefaultPoolSize, cfg.PoolSize)
}
