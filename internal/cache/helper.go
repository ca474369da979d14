package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Short-lived by design: the cache only has to absorb repeated
// public reads, not act as a source of truth.
const (
	ProfileListTTL = 30 * time.Second
	GithubRepoTTL  = 5 * time.Minute
)

const profileListKey = "profiles:all"

// ProfileListKey is the cache key for the public profile listing.
func ProfileListKey() string {
	return profileListKey
}

// GithubReposKey is the cache key for a user's GitHub repository listing.
func GithubReposKey(username string) string {
	return fmt.Sprintf("github:repos:%s", username)
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

// Aside tries Redis first, on miss it calls fetch (which must write into
// dest), then stores the result with ttl. Cache errors degrade to a plain
// fetch; the store is best-effort.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// InvalidateProfileList drops the cached public profile listing. Called
// after any profile mutation.
func InvalidateProfileList(ctx context.Context) {
	if client == nil {
		return
	}
	_ = client.Del(ctx, profileListKey).Err()
}
