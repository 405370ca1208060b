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

type cachedSummary struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"total_ratings"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client = nil })
	return mr
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "donor:7", DonorKey(7))
	assert.Equal(t, "profile:7", ProfileKey(7))
	assert.Equal(t, "donor:7:ratings", RatingSummaryKey(7))
	assert.Equal(t, "donors:search:A+|Dhaka|", DonorSearchKey("A+|Dhaka|"))
}

func TestGetSetJSON(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	var missing cachedSummary
	found, err := GetJSON(ctx, "donor:1:ratings", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "donor:1:ratings", cachedSummary{Average: 4.5, Count: 2}, time.Minute))

	var got cachedSummary
	found, err = GetJSON(ctx, "donor:1:ratings", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4.5, got.Average)
	assert.Equal(t, int64(2), got.Count)
}

func TestGetSetJSONNilClient(t *testing.T) {
	client = nil
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "donor:1", cachedSummary{}, time.Minute))

	var dest cachedSummary
	found, err := GetJSON(ctx, "donor:1", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheAside(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedSummary) func() error {
		return func() error {
			fetches++
			dest.Average = 3.8
			dest.Count = 5
			return nil
		}
	}

	var first cachedSummary
	require.NoError(t, CacheAside(ctx, "donor:2:ratings", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, 3.8, first.Average)

	// Second read is served from cache.
	var second cachedSummary
	require.NoError(t, CacheAside(ctx, "donor:2:ratings", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, int64(5), second.Count)
}

func TestCacheAsideFetchError(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	var dest cachedSummary
	wantErr := errors.New("db down")
	err := CacheAside(ctx, "donor:3:ratings", &dest, time.Minute, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// Failed fetches must not poison the cache.
	found, err := GetJSON(ctx, "donor:3:ratings", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, DonorKey(4), cachedSummary{}, time.Minute))
	require.NoError(t, SetJSON(ctx, RatingSummaryKey(4), cachedSummary{}, time.Minute))
	require.NoError(t, SetJSON(ctx, ProfileKey(4), cachedSummary{}, time.Minute))

	InvalidateProfile(ctx, 4)

	assert.False(t, mr.Exists(DonorKey(4)))
	assert.False(t, mr.Exists(RatingSummaryKey(4)))
	assert.False(t, mr.Exists(ProfileKey(4)))
}
