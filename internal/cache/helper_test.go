package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var out payload
	found, err := GetJSON(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", payload{Name: "alice", Count: 3}, time.Minute))

	found, err = GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "alice", Count: 3}, out)
}

func TestGetJSONWithoutClient(t *testing.T) {
	SetClient(nil)

	var out payload
	found, err := GetJSON(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(context.Background(), "k", out, time.Minute))
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fetched", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "aside", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Name)

	// Second call is served from the cache.
	var second payload
	require.NoError(t, Aside(ctx, "aside", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAsideFetchError(t *testing.T) {
	setupMiniredis(t)

	boom := errors.New("boom")
	var out payload
	err := Aside(context.Background(), "err", &out, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// Nothing was cached for the failed fetch.
	found, err := GetJSON(context.Background(), "err", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideTTLExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var out payload
	fetch := func() error {
		calls++
		out.Count = calls
		return nil
	}

	require.NoError(t, Aside(ctx, "ttl", &out, time.Second, fetch))
	mr.FastForward(2 * time.Second)
	require.NoError(t, Aside(ctx, "ttl", &out, time.Second, fetch))
	assert.Equal(t, 2, calls)
}

func TestInvalidateProfileList(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileListKey(), []payload{{Name: "a"}}, ProfileListTTL))
	require.True(t, mr.Exists(ProfileListKey()))

	InvalidateProfileList(ctx)
	assert.False(t, mr.Exists(ProfileListKey()))
}
