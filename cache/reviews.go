// Package cache holds the redis-backed review cache. Every method is
// nil-safe: with no redis configured, callers fall through to the
// database checks that remain authoritative.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type ReviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReviewCache(client *redis.Client, ttl time.Duration) *ReviewCache {
	return &ReviewCache{client: client, ttl: ttl}
}

func (c *ReviewCache) enabled() bool {
	return c != nil && c.client != nil
}

// MarkerKey identifies one (dish, order) review slot
func (c *ReviewCache) MarkerKey(dishID, orderID uint) string {
	return "review:" + strconv.FormatUint(uint64(dishID), 10) + ":" + strconv.FormatUint(uint64(orderID), 10)
}

// Exists reports whether the marker is set. Cache misses and errors both
// read as "not found"; the unique index on dish_review is the backstop.
func (c *ReviewCache) Exists(ctx context.Context, key string) bool {
	if !c.enabled() {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	return err == nil && n > 0
}

func (c *ReviewCache) SetMarker(ctx context.Context, key string) {
	if !c.enabled() {
		return
	}
	_ = c.client.Set(ctx, key, "1", c.ttl).Err()
}

func ratingKey(dishID uint) string {
	return "rating:" + strconv.FormatUint(uint64(dishID), 10)
}

// SetRating caches a dish's current average rating
func (c *ReviewCache) SetRating(ctx context.Context, dishID uint, rating float64) {
	if !c.enabled() {
		return
	}
	_ = c.client.Set(ctx, ratingKey(dishID), strconv.FormatFloat(rating, 'f', 2, 64), c.ttl).Err()
}

// Rating returns the cached average rating, if present
func (c *ReviewCache) Rating(ctx context.Context, dishID uint) (float64, bool) {
	if !c.enabled() {
		return 0, false
	}
	s, err := c.client.Get(ctx, ratingKey(dishID)).Result()
	if err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
