package ports

import "context"

// LoginLockout tracks failed login attempts per key and blocks further
// attempts once a threshold is crossed.
type LoginLockout interface {
	IsLocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	RecordSuccess(ctx context.Context, key string) error
}
