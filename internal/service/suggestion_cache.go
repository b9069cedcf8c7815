package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SuggestionCache stores suggestion results in Redis. A nil cache or a nil
// client disables caching.
type SuggestionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSuggestionCache creates a cache whose entries live for ttl.
func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	return &SuggestionCache{redis: client, ttl: ttl}
}

func (c *SuggestionCache) enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

// Get returns the cached result for key, if any.
func (c *SuggestionCache) Get(ctx context.Context, key string) (*SuggestionResult, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read suggestion cache: %w", err)
	}
	var result SuggestionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached suggestions: %w", err)
	}
	return &result, true, nil
}

// Set stores result under key.
func (c *SuggestionCache) Set(ctx context.Context, key string, result *SuggestionResult) error {
	if !c.enabled() {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write suggestion cache: %w", err)
	}
	return nil
}

// suggestionCacheKey fingerprints the pantry contents and options so any change
// to either misses the cache.
func suggestionCacheKey(userID uuid.UUID, pantry []string, opts SuggestionOptions) string {
	fold := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
		sort.Strings(out)
		return out
	}

	h := sha256.New()
	h.Write([]byte(strings.Join(fold(pantry), "\x1f")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(fold(opts.Preferences), "\x1f")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(fold(opts.Exclude), "\x1f")))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(opts.MaxRecipes)))

	return "suggestions:" + userID.String() + ":" + hex.EncodeToString(h.Sum(nil))[:32]
}
