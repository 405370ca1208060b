package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DonorKeyPrefix       = "donor:%d"
	ProfileKeyPrefix     = "profile:%d"
	RatingSummaryPrefix  = "donor:%d:ratings"
	DonorSearchKeyPrefix = "donors:search:%s"
)

const (
	DonorTTL         = 5 * time.Minute
	ProfileTTL       = 5 * time.Minute
	RatingSummaryTTL = 2 * time.Minute
	DonorSearchTTL   = 1 * time.Minute
)

func DonorKey(donorID uint) string {
	return fmt.Sprintf(DonorKeyPrefix, donorID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func RatingSummaryKey(donorID uint) string {
	return fmt.Sprintf(RatingSummaryPrefix, donorID)
}

func DonorSearchKey(fingerprint string) string {
	return fmt.Sprintf(DonorSearchKeyPrefix, fingerprint)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// CacheAside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
func CacheAside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) (err error) {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	// Fetch from source (DB)
	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateDonor(ctx context.Context, donorID uint) {
	Invalidate(ctx, DonorKey(donorID))
	Invalidate(ctx, RatingSummaryKey(donorID))
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	InvalidateDonor(ctx, userID)
}
