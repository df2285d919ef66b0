package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eventrewards/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the subset of redis.Cmdable the caches use.
type fakeRedis struct {
	redis.Cmdable
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failAll bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingEvents struct {
	domain.EventRepository
	event *domain.Event
	gets  int
}

func (c *countingEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	c.gets++
	if c.event == nil || c.event.ID != id {
		return nil, domain.ErrNotFound
	}
	return c.event, nil
}

func (c *countingEvents) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	if upd.Title != nil {
		c.event.Title = *upd.Title
	}
	return c.event, nil
}

type countingRewards struct {
	domain.RewardRepository
	rewards []*domain.Reward
	lists   int
}

func (c *countingRewards) ListByEventID(ctx context.Context, eventID string) ([]*domain.Reward, error) {
	c.lists++
	return c.rewards, nil
}

func (c *countingRewards) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	for _, rw := range c.rewards {
		if rw.ID == id {
			return rw, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c *countingRewards) Delete(ctx context.Context, id string) error {
	for i, rw := range c.rewards {
		if rw.ID == id {
			c.rewards = append(c.rewards[:i], c.rewards[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func testEvent(t *testing.T) *domain.Event {
	t.Helper()
	goal, err := domain.NewGoal(domain.GoalKindAttendance, 3, "three visits")
	require.NoError(t, err)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	e := domain.NewEvent("Spring", start, start.Add(time.Hour), domain.EventStatusActive, goal, start, start)
	e.ID = "ev-1"
	return e
}

func TestEventCache_GetByID(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := &countingEvents{event: testEvent(t)}
	cache := NewEventCache(repo, rdb, time.Minute, nil)

	first, err := cache.GetByID(ctx, "ev-1")
	require.NoError(t, err)
	second, err := cache.GetByID(ctx, "ev-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, time.Minute, rdb.ttls["event:ev-1"])
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, domain.GoalKindAttendance, second.Goal.Kind())
	assert.Equal(t, 3, second.Goal.Threshold())
	assert.True(t, second.IsActive())
}

func TestEventCache_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := &countingEvents{event: testEvent(t)}
	cache := NewEventCache(repo, rdb, time.Minute, nil)

	_, err := cache.GetByID(ctx, "ev-1")
	require.NoError(t, err)
	title := "Summer"
	_, err = cache.Update(ctx, "ev-1", domain.EventUpdate{Title: &title})
	require.NoError(t, err)

	got, err := cache.GetByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "Summer", got.Title)
	assert.Equal(t, 2, repo.gets)
}

func TestEventCache_NotFoundIsNotCached(t *testing.T) {
	rdb := newFakeRedis()
	cache := NewEventCache(&countingEvents{}, rdb, time.Minute, nil)

	_, err := cache.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, rdb.data)
}

func TestEventCache_RedisDownFallsThrough(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failAll = true
	repo := &countingEvents{event: testEvent(t)}
	cache := NewEventCache(repo, rdb, 0, nil)

	for range 2 {
		e, err := cache.GetByID(context.Background(), "ev-1")
		require.NoError(t, err)
		assert.Equal(t, "ev-1", e.ID)
	}
	assert.Equal(t, 2, repo.gets)
}

func TestRewardCache_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := &countingRewards{rewards: []*domain.Reward{
		{ID: "rw-1", EventID: "ev-1", Kind: domain.RewardKindPoint, Quantity: 100},
		{ID: "rw-2", EventID: "ev-1", Kind: domain.RewardKindDrawCount, Quantity: 1},
	}}
	cache := NewRewardCache(repo, rdb, time.Minute, nil)

	rewards, err := cache.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	rewards, err = cache.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	assert.Equal(t, 1, repo.lists)
	assert.Equal(t, domain.RewardKindDrawCount, rewards[1].Kind)

	require.NoError(t, cache.Delete(ctx, "rw-2"))
	rewards, err = cache.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, 2, repo.lists)

	require.ErrorIs(t, cache.Delete(ctx, "rw-9"), domain.ErrNotFound)
}
