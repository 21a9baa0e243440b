package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/skillswap/skillswap/internal/cache"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository/repotest"
)

// memStatsCache is an in-memory StatsCache.
type memStatsCache struct {
	mu          sync.Mutex
	stats       *model.SkillStats
	sets        int
	invalidates int
	failReads   bool
}

func (c *memStatsCache) GetSkillStats(context.Context) (*model.SkillStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failReads {
		return nil, errors.New("redis down")
	}
	if c.stats == nil {
		return nil, cache.ErrCacheMiss
	}
	cp := *c.stats
	return &cp, nil
}

func (c *memStatsCache) SetSkillStats(_ context.Context, stats *model.SkillStats, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *stats
	c.stats = &cp
	c.sets++
	return nil
}

func (c *memStatsCache) InvalidateSkillStats(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	c.invalidates++
	return nil
}

// fakeTokens issues deterministic tokens.
type fakeTokens struct {
	err error
}

func (f fakeTokens) Issue(identity model.Identity) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token-for-" + identity.Email, time.Unix(1700000000, 0), nil
}

func identityOf(u *model.User) *model.Identity {
	return &model.Identity{UserID: u.ID, Email: u.Email}
}

// vanishingStore simulates a concurrent delete landing between the
// ownership check and the write.
type vanishingStore struct {
	*repotest.MemStore
}

func (v vanishingStore) UpdateSkill(ctx context.Context, id int64, patch model.SkillPatch) error {
	_ = v.MemStore.DeleteSkill(ctx, id)
	return v.MemStore.UpdateSkill(ctx, id, patch)
}

func (v vanishingStore) DeleteSkill(ctx context.Context, id int64) error {
	_ = v.MemStore.DeleteSkill(ctx, id)
	return v.MemStore.DeleteSkill(ctx, id)
}

func (v vanishingStore) UpdateComment(ctx context.Context, id int64, message string) error {
	_ = v.MemStore.DeleteComment(ctx, id)
	return v.MemStore.UpdateComment(ctx, id, message)
}

func (v vanishingStore) DeleteComment(ctx context.Context, id int64) error {
	_ = v.MemStore.DeleteComment(ctx, id)
	return v.MemStore.DeleteComment(ctx, id)
}
