package cache

import (
	"context"
	"fmt"
	"gocoach/pkg/redis"
	"time"
)

// Default keys and lifetimes for the rendered reports.
// Reports go stale fast during a live match, the TTL is short on purpose.
const (
	reportCacheDuration = 10 * time.Second
	reportKey           = "report:%s:%s"
)

// ReportCache is the public interface for the rendered report cache.
type ReportCache interface {
	GetReport(ctx context.Context, username string, matchId string) (string, bool)
	SetReport(ctx context.Context, username string, matchId string, report string) error
}

// Two tier cache: the in-memory tier absorbs repeated queries inside one
// instance, the redis tier shares the report between sibling instances.
type reportCache struct {
	memory *MemCache
	redis  *redis.RedisClient
}

// NewReportCache creates a new instance of the report cache.
func NewReportCache(redisClient *redis.RedisClient) ReportCache {
	return &reportCache{
		memory: NewMemCache(),
		redis:  redisClient,
	}
}

// GetReport returns the cached report of a player in a match, if any.
func (rc *reportCache) GetReport(ctx context.Context, username string, matchId string) (string, bool) {
	key := fmt.Sprintf(reportKey, username, matchId)

	if value := rc.memory.Get(key); value != nil {
		if report, ok := value.(string); ok {
			return report, true
		}
	}

	report, err := rc.redis.Get(ctx, key)
	if err != nil {
		return "", false
	}

	rc.memory.Set(key, report, reportCacheDuration)
	return report, true
}

// SetReport saves a rendered report on both tiers.
func (rc *reportCache) SetReport(ctx context.Context, username string, matchId string, report string) error {
	key := fmt.Sprintf(reportKey, username, matchId)

	rc.memory.Set(key, report, reportCacheDuration)
	return rc.redis.Set(ctx, key, report, reportCacheDuration)
}
