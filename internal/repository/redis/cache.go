package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

// PredictionCache implements domain.PredictionCache on Redis string keys with a TTL
type PredictionCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewPredictionCache connects to addr and pings it once
func NewPredictionCache(ctx context.Context, addr string, ttl time.Duration) (*PredictionCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis: missing address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return &PredictionCache{rdb: rdb, ttl: ttl}, nil
}

// GetPrediction returns a cached prediction; ok is false on a miss
func (c *PredictionCache) GetPrediction(ctx context.Context, key string) (domain.PredictionResponse, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.PredictionResponse{}, false, nil
	}
	if err != nil {
		return domain.PredictionResponse{}, false, fmt.Errorf("redis: failed to get %s: %w", key, err)
	}
	var p domain.PredictionResponse
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.PredictionResponse{}, false, fmt.Errorf("redis: failed to decode %s: %w", key, err)
	}
	return p, true, nil
}

// SetPrediction stores a prediction under key until the TTL expires
func (c *PredictionCache) SetPrediction(ctx context.Context, key string, p domain.PredictionResponse) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("redis: failed to encode prediction: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to set %s: %w", key, err)
	}
	return nil
}

// Close releases the client
func (c *PredictionCache) Close() error {
	return c.rdb.Close()
}
