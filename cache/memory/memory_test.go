package memory

import (
	"context"
	"testing"
	"time"

	"github.com/nugw/ai-gallery/cache/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(t *testing.T) *Memory {
	provider, err := NewMemory(Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return provider
}

func TestMemory_SetGet(t *testing.T) {
	provider := newTestMemory(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, provider.Set(ctx, "key", payload{Name: "x", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, provider.Get(ctx, "key", &got))
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemory_Miss(t *testing.T) {
	provider := newTestMemory(t)

	var got string
	err := provider.Get(context.Background(), "missing", &got)
	assert.ErrorIs(t, err, types.ErrCacheMiss)
}

func TestMemory_Delete(t *testing.T) {
	provider := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, provider.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, provider.Delete(ctx, "key"))

	var got string
	err := provider.Get(ctx, "key", &got)
	assert.ErrorIs(t, err, types.ErrCacheMiss)
}

func TestMemory_Name(t *testing.T) {
	provider := newTestMemory(t)
	assert.Equal(t, "memory", provider.Name())
}
