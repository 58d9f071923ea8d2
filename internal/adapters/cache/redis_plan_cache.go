package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/obs"

	redis "github.com/redis/go-redis/v9"
)

const planKeyPrefix = "plan:"

// RedisPlanCache keeps serialized plans in Redis keyed by parameter fingerprint.
// Entries expire after TTL; a zero TTL keeps them until evicted.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{Client: client, TTL: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("redis client: url must not be empty")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}

	return rdb, nil
}

// Fetch the cached plan for fingerprint; a miss returns domain.ErrPlanNotFound.
func (c *RedisPlanCache) Get(ctx context.Context, fingerprint string) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.Client == nil {
		return nil, errors.New("plan cache: client is nil")
	}

	data, err := c.Client.Get(ctx, planKey(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan cache: %w", err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("get plan cache: decode %q: %w", fingerprint, err)
	}

	return &plan, nil
}

// Store plan under its fingerprint, replacing any previous entry.
func (c *RedisPlanCache) Put(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if plan == nil || plan.Fingerprint == "" {
		return errors.New("put plan cache: plan fingerprint must not be empty")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("put plan cache: encode %q: %w", plan.PlanID, err)
	}

	if err := c.Client.Set(ctx, planKey(plan.Fingerprint), data, c.TTL).Err(); err != nil {
		return fmt.Errorf("put plan cache: %w", err)
	}

	return nil
}

func planKey(fingerprint string) string { return planKeyPrefix + fingerprint }
