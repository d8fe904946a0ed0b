// README: Redis-backed polyline cache wrapping any route provider.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uipathfinder/internal/llm"
)

// cacheTTL keeps polylines for a day; campus road geometry is effectively static.
const cacheTTL = 24 * time.Hour

// CachedProvider memoises another provider's polylines in Redis. Cache
// failures are invisible to the caller: a miss or a Redis error just means
// one extra upstream call.
type CachedProvider struct {
	inner Provider
	redis *redis.Client
}

func NewCachedProvider(inner Provider, rdb *redis.Client) *CachedProvider {
	return &CachedProvider{inner: inner, redis: rdb}
}

func (c *CachedProvider) DrivingRoute(ctx context.Context, start, end llm.Coordinates) ([]llm.Coordinates, error) {
	key := routeKey(start, end)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var route []llm.Coordinates
		if err := json.Unmarshal([]byte(val), &route); err == nil {
			return route, nil
		}
	}

	route, err := c.inner.DrivingRoute(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(route); err == nil {
		_ = c.redis.Set(ctx, key, raw, cacheTTL).Err()
	}
	return route, nil
}

func routeKey(start, end llm.Coordinates) string {
	return fmt.Sprintf("route:%.6f,%.6f:%.6f,%.6f", start.Lat, start.Lng, end.Lat, end.Lng)
}
