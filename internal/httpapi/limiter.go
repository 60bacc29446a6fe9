package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// ExportLimiter caps concurrent exports per key.
type ExportLimiter interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

const exportCapPrefix = "export:concurrency:"

// RedisExportLimiter shares the cap across API replicas.
type RedisExportLimiter struct {
	rdb   *redis.Client
	limit int
	ttl   time.Duration
}

func NewRedisExportLimiter(rdb *redis.Client, limit int, ttl time.Duration) *RedisExportLimiter {
	return &RedisExportLimiter{rdb: rdb, limit: limit, ttl: ttl}
}

func (l *RedisExportLimiter) Acquire(ctx context.Context, key string) (bool, error) {
	return utils.AcquireConcurrencyCap(ctx, l.rdb, exportCapPrefix+key, l.limit, l.ttl)
}

func (l *RedisExportLimiter) Release(ctx context.Context, key string) error {
	return utils.ReleaseConcurrencyCap(ctx, l.rdb, exportCapPrefix+key)
}

// LocalExportLimiter is an in-process cap for single-replica and test runs.
type LocalExportLimiter struct {
	mu     sync.Mutex
	limit  int
	active map[string]int
}

func NewLocalExportLimiter(limit int) *LocalExportLimiter {
	return &LocalExportLimiter{limit: limit, active: map[string]int{}}
}

func (l *LocalExportLimiter) Acquire(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active[key] >= l.limit {
		return false, nil
	}
	l.active[key]++
	return true, nil
}

func (l *LocalExportLimiter) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active[key] <= 1 {
		delete(l.active, key)
		return nil
	}
	l.active[key]--
	return nil
}
