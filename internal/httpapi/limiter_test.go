package httpapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalExportLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewLocalExportLimiter(2)

	for i := 0; i < 2; i++ {
		ok, err := l.Acquire(ctx, "adm-1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Acquire(ctx, "adm-1")
	assert.False(t, ok, "third concurrent export is rejected")

	ok, _ = l.Acquire(ctx, "adm-2")
	assert.True(t, ok, "caps are per key")

	require.NoError(t, l.Release(ctx, "adm-1"))
	ok, _ = l.Acquire(ctx, "adm-1")
	assert.True(t, ok)
}
