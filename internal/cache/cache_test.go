package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/playpool/shotsolver/internal/shot"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStable(t *testing.T) {
	table := shot.NewStandardTable()
	req := shot.Request{Cue: shot.NewVec2(300, 1000), Object: shot.NewVec2(500, 500), MaxCushions: 1}

	a := Key(table, req)
	b := Key(table, req)
	if a != b {
		t.Errorf("keys differ: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, keyPrefix) {
		t.Errorf("key %s missing prefix", a)
	}
}

func TestKeyDependsOnInputs(t *testing.T) {
	table := shot.NewStandardTable()
	req := shot.Request{Cue: shot.NewVec2(300, 1000), Object: shot.NewVec2(500, 500)}
	base := Key(table, req)

	moved := req
	moved.Object.X += 0.0001
	if Key(table, moved) == base {
		t.Error("moving the object ball should change the key")
	}

	cushions := req
	cushions.MaxCushions = 2
	if Key(table, cushions) == base {
		t.Error("cushion count should change the key")
	}

	wider := table
	wider.RailTolerance = 40
	if Key(wider, req) == base {
		t.Error("table geometry should change the key")
	}
}

func TestDisabledCache(t *testing.T) {
	c := New(nil, time.Minute)
	if c.Enabled() {
		t.Error("nil client cache should be disabled")
	}
	ctx := context.Background()
	c.Set(ctx, "k", []shot.Candidate{{Kind: shot.KindDirect}})
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("disabled cache should never hit")
	}
}

func solved(t *testing.T) (string, []shot.Candidate) {
	t.Helper()
	s, err := shot.NewSolver(shot.NewStandardTable())
	require.NoError(t, err)
	req := shot.Request{Cue: shot.NewVec2(559, 300), Object: shot.NewVec2(559, 1117.5), MaxCushions: 2}
	candidates, err := s.Solve(req)
	require.NoError(t, err)
	return Key(s.Table(), req), candidates
}

func TestSetThenGet(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	require.True(t, c.Enabled())
	ctx := context.Background()
	key, candidates := solved(t)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, candidates)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, candidates, got)

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestUndecodableEntryIsDropped(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	key, _ := solved(t)
	require.NoError(t, mr.Set(key, "{not json"))

	_, ok := c.Get(context.Background(), key)
	assert.False(t, ok)
	assert.False(t, mr.Exists(key))
}

func TestUnreachableRedisIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: time.Second})
	defer rdb.Close()
	c := New(rdb, time.Minute)
	ctx := context.Background()
	key, candidates := solved(t)

	c.Set(ctx, key, candidates)
	_, ok := c.Get(ctx, key)
	assert.False(t, ok)
}
