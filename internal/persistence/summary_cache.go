package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-lite/internal/domain"
)

const summaryKeyPrefix = "attendance:summary:"

// SummaryCache caches computed attendance summaries in Redis. A broken cache
// must never fail a request, so every miss path degrades to a storage scan.
type SummaryCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewSummaryCache constructs the cache.
func NewSummaryCache(r *Redis, ttl time.Duration, logger *zap.Logger) *SummaryCache {
	return &SummaryCache{redis: r, ttl: ttl, logger: logger}
}

// Get returns the cached summary for the employee, or nil on miss.
func (c *SummaryCache) Get(ctx context.Context, employeeID string) *domain.AttendanceSummary {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil
	}
	raw, err := c.redis.Client.Get(ctx, summaryKeyPrefix+employeeID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("summary cache read failed", zap.Error(err))
		}
		return nil
	}
	var summary domain.AttendanceSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}
	return &summary
}

// Set stores a computed summary with the configured expiry.
func (c *SummaryCache) Set(ctx context.Context, summary *domain.AttendanceSummary) {
	if c == nil || c.redis == nil || c.redis.Client == nil || summary == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, summaryKeyPrefix+summary.EmployeeID, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("summary cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached summary after any attendance write.
func (c *SummaryCache) Invalidate(ctx context.Context, employeeID string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, summaryKeyPrefix+employeeID).Err(); err != nil {
		c.logger.Debug("summary cache invalidation failed", zap.Error(err))
	}
}
