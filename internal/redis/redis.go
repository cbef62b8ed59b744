package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionsPerWorker is how many concurrent solves each solver worker is
// expected to serve; every solve issues at most a GET and a SET.
const sessionsPerWorker = 4

// Connect establishes a connection to Redis tuned for the result cache. The
// pool is sized from the solver worker count unless the URL sets pool_size,
// and command timeouts are short: a slow cache is treated as a miss.
func Connect(redisURL string, solverWorkers int) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	applyCacheOptions(opt, solverWorkers)

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func applyCacheOptions(opt *redis.Options, solverWorkers int) {
	if opt.PoolSize == 0 {
		opt.PoolSize = max(solverWorkers, 1) * sessionsPerWorker
	}
	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = 500 * time.Millisecond
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = 500 * time.Millisecond
	}
	opt.MaxRetries = 1
}
