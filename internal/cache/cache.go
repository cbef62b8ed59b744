package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/playpool/shotsolver/internal/shot"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "shots:v1:"

// ShotCache is a cache-aside store for solve results. Results are a pure
// function of table and request, so entries never need invalidating; the TTL
// only bounds memory. A ShotCache with a nil client caches nothing.
type ShotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ShotCache {
	return &ShotCache{rdb: rdb, ttl: ttl}
}

// Enabled reports whether lookups can hit.
func (c *ShotCache) Enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// Key derives the cache key for a request on a table.
func Key(table shot.Table, req shot.Request) string {
	payload, _ := json.Marshal(struct {
		Table   shot.Table   `json:"table"`
		Request shot.Request `json:"request"`
	}{table, req})
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns cached candidates for key. A miss and a Redis failure both
// report false; failures are logged.
func (c *ShotCache) Get(ctx context.Context, key string) ([]shot.Candidate, bool) {
	if !c.Enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("[CACHE] get failed")
		}
		return nil, false
	}
	var out []shot.Candidate
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[CACHE] dropping undecodable entry")
		c.rdb.Del(ctx, key)
		return nil, false
	}
	return out, true
}

// Set stores candidates under key.
func (c *ShotCache) Set(ctx context.Context, key string, candidates []shot.Candidate) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		log.Warn().Err(err).Msg("[CACHE] marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("[CACHE] set failed")
	}
}
