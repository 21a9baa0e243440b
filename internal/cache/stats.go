package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/skillswap/skillswap/internal/model"
)

const statsKey = "skills:stats"

// GetSkillStats returns cached skill stats or ErrCacheMiss.
func (c *Cache) GetSkillStats(ctx context.Context) (*model.SkillStats, error) {
	result, err := c.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}
	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	stats, err := statsFromHash(result)
	if err != nil {
		// Treat a corrupt entry as a miss; the next Set overwrites it.
		return nil, ErrCacheMiss
	}
	return stats, nil
}

// SetSkillStats stores stats for ttl.
func (c *Cache) SetSkillStats(ctx context.Context, stats *model.SkillStats, ttl time.Duration) error {
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, statsKey, statsToHash(stats))
	pipe.Expire(ctx, statsKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set stats failed: %w", err)
	}
	return nil
}

// InvalidateSkillStats drops the cached stats.
func (c *Cache) InvalidateSkillStats(ctx context.Context) error {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("redis del stats failed: %w", err)
	}
	return nil
}

func statsToHash(s *model.SkillStats) map[string]any {
	return map[string]any{
		"total_offerings": s.TotalOfferings,
		"total_requests":  s.TotalRequests,
		"open_offerings":  s.OpenOfferings,
		"open_requests":   s.OpenRequests,
	}
}

func statsFromHash(h map[string]string) (*model.SkillStats, error) {
	stats := &model.SkillStats{}
	fields := []struct {
		name string
		dst  *int64
	}{
		{"total_offerings", &stats.TotalOfferings},
		{"total_requests", &stats.TotalRequests},
		{"open_offerings", &stats.OpenOfferings},
		{"open_requests", &stats.OpenRequests},
	}

	for _, f := range fields {
		raw, ok := h[f.name]
		if !ok {
			return nil, fmt.Errorf("missing field %s", f.name)
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
		*f.dst = v
	}

	return stats, nil
}
