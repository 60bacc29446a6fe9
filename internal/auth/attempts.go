package auth

import (
	"context"
	"sync"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// AttemptCounter tracks failed logins per key within a sliding-start window.
type AttemptCounter interface {
	Fail(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

const attemptKeyPrefix = "auth:login_failures:"

// RedisAttempts keeps counters in Redis so every API replica sees them.
type RedisAttempts struct {
	rdb    *redis.Client
	window time.Duration
}

func NewRedisAttempts(rdb *redis.Client, window time.Duration) *RedisAttempts {
	return &RedisAttempts{rdb: rdb, window: window}
}

func (a *RedisAttempts) Fail(ctx context.Context, key string) (int64, error) {
	return utils.IncrementWindow(ctx, a.rdb, attemptKeyPrefix+normalizeEmail(key), a.window)
}

func (a *RedisAttempts) Reset(ctx context.Context, key string) error {
	return utils.ResetWindow(ctx, a.rdb, attemptKeyPrefix+normalizeEmail(key))
}

// MemoryAttempts is the single-process counter used in tests and local runs.
type MemoryAttempts struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	counts map[string]attemptWindow
}

type attemptWindow struct {
	count   int64
	expires time.Time
}

func NewMemoryAttempts(window time.Duration, now func() time.Time) *MemoryAttempts {
	if now == nil {
		now = time.Now
	}
	return &MemoryAttempts{window: window, now: now, counts: map[string]attemptWindow{}}
}

func (a *MemoryAttempts) Fail(_ context.Context, key string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key = normalizeEmail(key)
	now := a.now()
	w := a.counts[key]
	if !now.Before(w.expires) {
		w = attemptWindow{expires: now.Add(a.window)}
	}
	w.count++
	a.counts[key] = w
	return w.count, nil
}

func (a *MemoryAttempts) Reset(_ context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.counts, normalizeEmail(key))
	return nil
}
