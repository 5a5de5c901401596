package usecases

import (
	"context"
	"encoding/json"

	"github.com/samirrijal/cityexplorer/internal/core/ports"
	"github.com/samirrijal/cityexplorer/internal/pkg/metrics"
)

// readThrough returns the cached value for key or calls fetch and caches its result.
// Cache errors never fail the call; a nil cache or zero ttl disables caching.
func readThrough[T any](ctx context.Context, cache ports.CacheService, ttl int, op, key string, fetch func(context.Context) (T, error)) (T, error) {
	if cache != nil && ttl > 0 {
		if data, err := cache.Get(ctx, key); err == nil {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				metrics.CacheHits.WithLabelValues(op).Inc()
				return v, nil
			}
		}
		metrics.CacheMisses.WithLabelValues(op).Inc()
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}

	if cache != nil && ttl > 0 {
		if data, err := json.Marshal(v); err == nil {
			_ = cache.Set(ctx, key, data, ttl)
		}
	}
	return v, nil
}
