package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_SetGet(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "alert:notified:m1_2024-03-01_10-00-00", "2024-03-01T10:01:00Z", 0))
	val, err := kv.Get(ctx, "alert:notified:m1_2024-03-01_10-00-00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:01:00Z", val)
}

func TestMemoryKV_TTLExpiry(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "ephemeral", "v", 10*time.Millisecond))
	val, err := kv.Get(ctx, "ephemeral")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	time.Sleep(20 * time.Millisecond)
	_, err = kv.Get(ctx, "ephemeral")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKV_Overwrite(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v1", 0))
	require.NoError(t, kv.Set(ctx, "k", "v2", 0))
	val, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", val)
}

func TestMemoryKV_ScanKeys(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "alert:notified:a1", "x", 0))
	require.NoError(t, kv.Set(ctx, "alert:notified:a2", "x", 0))
	require.NoError(t, kv.Set(ctx, "other:key", "x", 0))
	require.NoError(t, kv.Set(ctx, "alert:notified:expired", "x", time.Nanosecond))
	time.Sleep(time.Millisecond)

	keys, err := kv.ScanKeys(ctx, "alert:notified:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alert:notified:a1", "alert:notified:a2"}, keys)

	all, err := kv.ScanKeys(ctx, "*")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	exact, err := kv.ScanKeys(ctx, "other:key")
	require.NoError(t, err)
	assert.Equal(t, []string{"other:key"}, exact)
}
