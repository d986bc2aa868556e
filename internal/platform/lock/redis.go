package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/ledger_periods/internal/apperrors"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisLockTTL = 30 * time.Second
	redisRetryBackoff   = 100 * time.Millisecond
)

// RedisLocker is a Locker shared by every instance pointed at the same Redis.
// A held lock is refreshed every ttl/2 until released, so ttl only bounds how
// long a crashed holder keeps the key.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker wraps rdb. A non-positive ttl falls back to 30s.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultRedisLockTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

var _ Locker = (*RedisLocker)(nil)

// Lock implements Locker. Without a ctx deadline, retries stop after one ttl.
func (r *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	lockKey := fmt.Sprintf("lock:%s", key)
	held, err := r.client.Obtain(ctx, lockKey, r.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(redisRetryBackoff),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, apperrors.NewConflictError("resource is busy, retry later", key)
	} else if err != nil {
		return nil, apperrors.NewAppError(500, "failed to obtain lock", err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go r.keepAlive(held, lockKey, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			// ctx may already be cancelled when the caller unwinds.
			if err := held.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				slog.Warn("failed to release redis lock", slog.String("key", lockKey), slog.String("error", err.Error()))
			}
		})
	}, nil
}

func (r *RedisLocker) keepAlive(held *redislock.Lock, lockKey string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := held.Refresh(context.Background(), r.ttl, nil); err != nil {
				slog.Warn("failed to refresh redis lock", slog.String("key", lockKey), slog.String("error", err.Error()))
				return
			}
		}
	}
}
