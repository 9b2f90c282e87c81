package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinner-suggestion-bot/internal/infrastructure/config"
)

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Hour,
		},
	}
}

func TestManagerDisabledReturnsNil(t *testing.T) {
	m := NewManager(&config.Config{Cache: config.CacheConfig{Enabled: false}})
	assert.Nil(t, m)
}

func TestManagerSetAndGet(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "夕食の提案プロンプト")
	assert.Error(t, err, "未書き込みのキーはミス")

	require.NoError(t, m.Set(ctx, "夕食の提案プロンプト", "1. 鶏肉炒め"))

	got, err := m.Get(ctx, "夕食の提案プロンプト")
	require.NoError(t, err)
	assert.Equal(t, "1. 鶏肉炒め", got)

	// 別のプロンプトは別エントリ
	_, err = m.Get(ctx, "別のプロンプト")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(cacheConfig(10, 10*time.Millisecond))
	require.NotNil(t, m)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "p", "v"))
	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "p")
	assert.Error(t, err, "TTL 経過後はミス扱い")
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(cacheConfig(2, time.Hour))
	require.NotNil(t, m)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	// "b" にアクセスして "a" を最少アクセスにする
	_, err := m.Get(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "a")
	assert.Error(t, err, "最少アクセスのエントリが淘汰される")
	got, err := m.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestManagerStats(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "p", "v"))
	_, _ = m.Get(ctx, "p")
	_, _ = m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.InDelta(t, 0.5, stats["hit_ratio"], 0.001)
}
