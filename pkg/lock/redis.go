package lock

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-ledger/pkg/cache"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Redis is a lock held as a redis key with a random token, for deployments that
// already keep a redis next to the service.
type Redis struct {
	cache  *cache.RedisClient
	key    string
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	logger logger.ZapLogger
}

func NewRedis(c *cache.RedisClient, key string, ttl, wait, retry time.Duration, log logger.ZapLogger) *Redis {
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	return &Redis{cache: c, key: key, ttl: ttl, wait: wait, retry: retry, logger: log}
}

func (r *Redis) Acquire(ctx context.Context) (func(), error) {
	token := uuid.New().String()
	deadline := time.Now().Add(r.wait)

	for {
		ok, err := r.cache.AcquireLock(ctx, r.key, token, r.ttl)
		if err != nil {
			r.logger.Error("failed to acquire lock redis error", zap.String("key", r.key), zap.Error(err))
		}
		if ok {
			return func() { r.release(token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrTimeout
		}

		select {
		case <-time.After(r.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (r *Redis) release(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	released, err := r.cache.ReleaseLock(ctx, r.key, token)
	if err != nil {
		r.logger.Error("failed to release lock", zap.String("key", r.key), zap.Error(err))
		return
	}
	if !released {
		r.logger.Warn("lock expired before release", zap.String("key", r.key))
	}
}
