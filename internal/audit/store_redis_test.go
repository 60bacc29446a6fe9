package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	args *redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = a
	return redis.NewStringResult("1718452800000-0", f.err)
}

func TestRedisStreamStore_Append(t *testing.T) {
	fake := &fakeStream{}
	store := NewRedisStreamStore(fake, "", 10000)

	e := Entry{ID: "id-1", Timestamp: fixedNow, Category: CategoryAdmin, EventType: "settings_changed", Success: true}
	require.NoError(t, store.Append(context.Background(), e))

	require.NotNil(t, fake.args)
	assert.Equal(t, DefaultStream, fake.args.Stream)
	assert.Equal(t, int64(10000), fake.args.MaxLen)
	assert.True(t, fake.args.Approx)

	values := fake.args.Values.(map[string]any)
	assert.Equal(t, "id-1", values["id"])
	var decoded Entry
	require.NoError(t, json.Unmarshal([]byte(values["entry"].(string)), &decoded))
	assert.Equal(t, CategoryAdmin, decoded.Category)
}

func TestRedisStreamStore_AppendError(t *testing.T) {
	boom := errors.New("READONLY")
	store := NewRedisStreamStore(&fakeStream{err: boom}, "audit:test", 0)

	err := store.Append(context.Background(), Entry{ID: "id-1"})
	assert.ErrorIs(t, err, boom)
}
