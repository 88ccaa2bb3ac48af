// Package cache holds the Redis-backed scoring result cache. Cached scores
// are advisory; a miss or a stale entry only means the engine recomputes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// Client holds the Redis client
type Client struct {
	Redis *redis.Client
}

// NewClient creates a new Redis client and verifies the connection.
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed connecting to redis: %w", err)
	}

	return &Client{Redis: client}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.Redis.Close()
}

// Set sets a key-value pair with expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Redis.Set(ctx, key, value, expiration).Err()
}

// Get gets a value by key
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Redis.Get(ctx, key).Result()
}

// Delete deletes keys
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.Redis.Del(ctx, keys...).Err()
}

func scoreKey(workspaceID, leadID string) string {
	return fmt.Sprintf("score:%s:%s", workspaceID, leadID)
}

// SetScore caches a scoring result for a lead.
func (c *Client) SetScore(ctx context.Context, workspaceID, leadID string, result *models.ScoringResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode scoring result: %w", err)
	}
	return c.Set(ctx, scoreKey(workspaceID, leadID), payload, ttl)
}

// GetScore returns a cached scoring result, or (nil, nil) on a miss.
func (c *Client) GetScore(ctx context.Context, workspaceID, leadID string) (*models.ScoringResult, error) {
	payload, err := c.Get(ctx, scoreKey(workspaceID, leadID))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result models.ScoringResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached scoring result: %w", err)
	}
	return &result, nil
}

// InvalidateScore removes a lead's cached score, used after re-scoring.
func (c *Client) InvalidateScore(ctx context.Context, workspaceID, leadID string) error {
	return c.Delete(ctx, scoreKey(workspaceID, leadID))
}
