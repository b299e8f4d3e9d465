package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// LoginLockout counts failed logins per key and locks the key once the
// threshold is reached.
// Key format: login:fail:<key> (counter), login:lock:<key> (lock flag)
type LoginLockout struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginLockout creates a LoginLockout. Failures are counted within
// window and the lock lasts for window as well.
func NewLoginLockout(client *redis.Client, maxAttempts int, window time.Duration) *LoginLockout {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultLockout
	}
	return &LoginLockout{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func (l *LoginLockout) IsLocked(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Exists(ctx, lockKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n > 0, nil
}

// RecordFailure increments the counter and sets the lock when the
// threshold is crossed.
func (l *LoginLockout) RecordFailure(ctx context.Context, key string) error {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, failKey(key))
		pipe.ExpireNX(ctx, failKey(key), l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("lockout record: %w", err)
	}

	if incr.Val() < l.maxAttempts {
		return nil
	}
	if err := l.client.Set(ctx, lockKey(key), "1", l.window).Err(); err != nil {
		return fmt.Errorf("lockout set: %w", err)
	}
	return l.client.Del(ctx, failKey(key)).Err()
}

func (l *LoginLockout) RecordSuccess(ctx context.Context, key string) error {
	return l.client.Del(ctx, failKey(key), lockKey(key)).Err()
}

func failKey(key string) string { return "login:fail:" + key }
func lockKey(key string) string { return "login:lock:" + key }
