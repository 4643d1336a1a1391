package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rolereader/resume-matcher/internal/models"
)

const comparisonExpiration = 24 * time.Hour

var ErrCacheMiss = errors.New("comparison not cached")

type ComparisonCache interface {
	Get(ctx context.Context, id uint) (*models.ComparisonResponse, error)
	Set(ctx context.Context, resp models.ComparisonResponse) error
	Delete(ctx context.Context, id uint) error
}

type redisComparisonCache struct {
	rdb *redis.Client
}

func NewComparisonCache(rdb *redis.Client) ComparisonCache {
	if rdb == nil {
		return noopComparisonCache{}
	}
	return &redisComparisonCache{rdb: rdb}
}

func (c *redisComparisonCache) Get(ctx context.Context, id uint) (*models.ComparisonResponse, error) {
	val, err := c.rdb.Get(ctx, comparisonKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read comparison cache: %w", err)
	}

	var resp models.ComparisonResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cached comparison: %w", err)
	}
	return &resp, nil
}

func (c *redisComparisonCache) Set(ctx context.Context, resp models.ComparisonResponse) error {
	val, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode comparison: %w", err)
	}
	if err := c.rdb.Set(ctx, comparisonKey(resp.ID), val, comparisonExpiration).Err(); err != nil {
		return fmt.Errorf("failed to write comparison cache: %w", err)
	}
	return nil
}

func (c *redisComparisonCache) Delete(ctx context.Context, id uint) error {
	if err := c.rdb.Del(ctx, comparisonKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to evict comparison cache: %w", err)
	}
	return nil
}

func comparisonKey(id uint) string {
	return fmt.Sprintf("comparison:%d", id)
}

type noopComparisonCache struct{}

func (noopComparisonCache) Get(context.Context, uint) (*models.ComparisonResponse, error) {
	return nil, ErrCacheMiss
}

func (noopComparisonCache) Set(context.Context, models.ComparisonResponse) error { return nil }

func (noopComparisonCache) Delete(context.Context, uint) error { return nil }
