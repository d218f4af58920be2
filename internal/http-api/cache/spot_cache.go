package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SpotAggregates is the derived review data cached per spot.
type SpotAggregates struct {
	NumReviews int64
	AvgStars   float64
}

// AggregateCache is a read-through cache for spot review aggregates.
// A nil *AggregateCache (or one with no client) is a no-op, so the
// service layer never has to care whether redis is configured.
type AggregateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAggregateCache connects to redis using a REDIS_URL style address.
func NewAggregateCache(redisURL string, ttl time.Duration) (*AggregateCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &AggregateCache{client: rdb, ttl: ttl}, nil
}

func key(spotID int64) string {
	return fmt.Sprintf("spot:%d:reviews", spotID)
}

// Get returns the cached aggregates for a spot, or (nil, nil) on a miss.
func (c *AggregateCache) Get(ctx context.Context, spotID int64) (*SpotAggregates, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	fields, err := c.client.HGetAll(ctx, key(spotID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	count, err := strconv.ParseInt(fields["numReviews"], 10, 64)
	if err != nil {
		return nil, err
	}
	avg, err := strconv.ParseFloat(fields["avgStars"], 64)
	if err != nil {
		return nil, err
	}

	return &SpotAggregates{NumReviews: count, AvgStars: avg}, nil
}

// Set stores the aggregates for a spot with the configured TTL.
func (c *AggregateCache) Set(ctx context.Context, spotID int64, agg SpotAggregates) error {
	if c == nil || c.client == nil {
		return nil
	}

	fields := map[string]any{
		"numReviews": agg.NumReviews,
		"avgStars":   agg.AvgStars,
	}

	if err := c.client.HSet(ctx, key(spotID), fields).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key(spotID), c.ttl).Err()
}

// Invalidate drops the cached aggregates for a spot. Called whenever a
// review is created for it or the spot itself is deleted.
func (c *AggregateCache) Invalidate(ctx context.Context, spotID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, key(spotID)).Err()
}
