package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StreamAdder is satisfied by *redis.Client.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamStore appends entries to a Redis stream for downstream shipping.
// The stream is trimmed approximately to MaxLen.
type RedisStreamStore struct {
	rdb    StreamAdder
	stream string
	maxLen int64
}

const DefaultStream = "audit:log"

func NewRedisStreamStore(rdb StreamAdder, stream string, maxLen int64) *RedisStreamStore {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisStreamStore{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (s *RedisStreamStore) Name() string { return "redis" }

func (s *RedisStreamStore) Append(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":       e.ID,
			"category": string(e.Category),
			"entry":    string(payload),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.rdb.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
