package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/pkg/api"
)

func newRedis(t *testing.T, opts ...Option) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	r := NewFromClient(client, opts...)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestKeyIsCanonical(t *testing.T) {
	a := api.RequestV1{Sequence: "CGTTGA", Methods: map[string]string{"nn": "all97", "sinMM": "allsanpey"}}
	b := api.RequestV1{Sequence: "CGTTGA", Methods: map[string]string{"sinMM": "allsanpey", "nn": "all97"}}
	ka, err := Key(a)
	require.NoError(t, err)
	kb, err := Key(b)
	require.NoError(t, err)
	assert.Equal(t, ka, kb)
	assert.Len(t, ka, 64)

	b.OligoConc = 1e-4
	kc, err := Key(b)
	require.NoError(t, err)
	assert.NotEqual(t, ka, kc)
}

func TestRedisRoundTrip(t *testing.T) {
	r, mr := newRedis(t, WithPrefix("test:"))
	ctx := context.Background()
	require.NoError(t, r.Ping(ctx))

	_, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	want := api.ResultV1{Sequence: "CGTTGA", Tm: 21.5, Mode: "NN"}
	require.NoError(t, r.Put(ctx, "k", want))
	assert.True(t, mr.Exists("test:k"))

	got, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRedisTTL(t *testing.T) {
	r, mr := newRedis(t, WithTTL(time.Minute))
	ctx := context.Background()
	require.NoError(t, r.Put(ctx, "k", api.ResultV1{Tm: 1}))
	assert.Equal(t, time.Minute, mr.TTL("tmcalc:result:k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCorruptValue(t *testing.T) {
	r, mr := newRedis(t)
	require.NoError(t, mr.Set("tmcalc:result:k", "not json"))
	_, _, err := r.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	require.NoError(t, c.Put(context.Background(), "k", api.ResultV1{}))
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
