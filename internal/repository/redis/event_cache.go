// Package redis caches event and reward reads in Redis in front of the Postgres repositories.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"eventrewards/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	prefixEvent   = "event:"
	suffixRewards = ":rewards"
	defaultTTL    = 30 * time.Second
)

func eventKey(id string) string        { return prefixEvent + id }
func eventRewardsKey(id string) string { return prefixEvent + id + suffixRewards }

// store wraps the Redis client. Redis failures are logged and treated as misses,
// so the database stays the source of truth.
type store struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func newStore(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return store{client: client, ttl: ttl, logger: logger}
}

func (s store) get(ctx context.Context, key string, dst any) bool {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.WarnContext(ctx, "cache entry unreadable", "key", key, "error", err)
		return false
	}
	return true
}

func (s store) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (s store) invalidate(ctx context.Context, keys ...string) {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

type eventCache struct {
	next domain.EventRepository
	store
}

// NewEventCache returns an EventRepository that serves GetByID from Redis and
// drops the cached entry on every write.
func NewEventCache(next domain.EventRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) domain.EventRepository {
	return &eventCache{next: next, store: newStore(client, ttl, logger)}
}

func (c *eventCache) Create(ctx context.Context, e *domain.Event) error {
	return c.next.Create(ctx, e)
}

func (c *eventCache) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var cached domain.Event
	if c.get(ctx, eventKey(id), &cached) {
		return &cached, nil
	}
	e, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, eventKey(id), e)
	return e, nil
}

func (c *eventCache) List(ctx context.Context, status *domain.EventStatus) ([]*domain.Event, error) {
	return c.next.List(ctx, status)
}

func (c *eventCache) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, err := c.next.Update(ctx, id, upd)
	c.invalidate(ctx, eventKey(id))
	return e, err
}

type rewardCache struct {
	next domain.RewardRepository
	store
}

// NewRewardCache returns a RewardRepository that serves ListByEventID from Redis
// and drops the event's cached reward list on every write.
func NewRewardCache(next domain.RewardRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) domain.RewardRepository {
	return &rewardCache{next: next, store: newStore(client, ttl, logger)}
}

func (c *rewardCache) Create(ctx context.Context, rw *domain.Reward) error {
	err := c.next.Create(ctx, rw)
	c.invalidate(ctx, eventRewardsKey(rw.EventID))
	return err
}

func (c *rewardCache) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	return c.next.GetByID(ctx, id)
}

func (c *rewardCache) ListByEventID(ctx context.Context, eventID string) ([]*domain.Reward, error) {
	var cached []*domain.Reward
	if c.get(ctx, eventRewardsKey(eventID), &cached) {
		return cached, nil
	}
	rewards, err := c.next.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, eventRewardsKey(eventID), rewards)
	return rewards, nil
}

func (c *rewardCache) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.Reward, error) {
	rw, err := c.next.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, eventRewardsKey(rw.EventID))
	return rw, nil
}

func (c *rewardCache) Delete(ctx context.Context, id string) error {
	rw, err := c.next.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, eventRewardsKey(rw.EventID))
	return nil
}
