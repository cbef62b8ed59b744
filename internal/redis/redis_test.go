package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSizesPoolFromWorkers(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect("redis://"+mr.Addr(), 3)
	require.NoError(t, err)
	defer client.Close()

	opt := client.Options()
	assert.Equal(t, 3*sessionsPerWorker, opt.PoolSize)
	assert.Equal(t, 500*time.Millisecond, opt.ReadTimeout)
	assert.Equal(t, 1, opt.MaxRetries)
}

func TestCacheOptionsKeepURLSettings(t *testing.T) {
	opt, err := redis.ParseURL("redis://localhost:6379/0?pool_size=7&read_timeout=2s")
	require.NoError(t, err)
	applyCacheOptions(opt, 0)
	assert.Equal(t, 7, opt.PoolSize)
	assert.Equal(t, 2*time.Second, opt.ReadTimeout)

	opt = &redis.Options{}
	applyCacheOptions(opt, 0)
	assert.Equal(t, sessionsPerWorker, opt.PoolSize)
}

func TestConnectFailsFast(t *testing.T) {
	_, err := Connect("redis://127.0.0.1:1", 1)
	assert.Error(t, err)

	_, err = Connect("not-a-url", 1)
	assert.Error(t, err)
}
