package redis

import (
	"context"
	"time"
)

// DistributedLock is a best-effort single-flight guard on a Redis key.
// It is not fencing-safe: the TTL bounds how long a crashed holder can
// block others, and a slow holder past the TTL may briefly overlap with
// the next one. Good enough for skipping duplicate catalog refreshes,
// not for anything that must be exclusive.
type DistributedLock struct {
	cache *Cache
	key   string
	ttl   time.Duration
}

// NewDistributedLock creates a lock on the named resource. A zero ttl
// uses TTLDistributedLock.
func NewDistributedLock(cache *Cache, resource string, ttl time.Duration) *DistributedLock {
	if ttl <= 0 {
		ttl = TTLDistributedLock
	}
	return &DistributedLock{cache: cache, key: LockKey(resource), ttl: ttl}
}

// TryAcquire attempts to take the lock without blocking. The second
// return reports Redis errors, not contention.
func (l *DistributedLock) TryAcquire(ctx context.Context) (bool, error) {
	return l.cache.SetNX(ctx, l.key, time.Now().UTC(), l.ttl)
}

// Release drops the lock. Safe to call when the lock expired already.
func (l *DistributedLock) Release(ctx context.Context) error {
	return l.cache.Delete(ctx, l.key)
}
