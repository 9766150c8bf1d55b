package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ListCache is a read-through JSON cache for collection reads.
type ListCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// cachedList serves key from cache when possible and populates it from load otherwise.
// Cache failures are logged and never fail the read.
func cachedList[T any](ctx context.Context, cache ListCache, ttl time.Duration, logger logrus.FieldLogger, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if cache != nil {
		var out []T
		ok, err := cache.GetJSON(ctx, key, &out)
		if err != nil {
			logger.WithError(err).WithField("key", key).Warn("cache read failed")
		} else if ok {
			return out, nil
		}
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.SetJSON(ctx, key, out, ttl); err != nil {
			logger.WithError(err).WithField("key", key).Warn("cache write failed")
		}
	}
	return out, nil
}

func invalidate(ctx context.Context, cache ListCache, logger logrus.FieldLogger, key string) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, key); err != nil {
		logger.WithError(err).WithField("key", key).Warn("cache invalidation failed")
	}
}
