package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/pkg/logger"
)

// memCache stores JSON like pkg/redis.Cache does
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.ttls[key] = ttl
	return nil
}

func TestRedisSource_PushAndLoad(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	src := NewRedisSource(cache, logger.Nop())

	n, err := src.PushGrowth(ctx, contracts.GrowthCache{
		"JEPI": contracts.NewReturnWindow(0.01, 0.02, 0.04, 0.09),
		"NONE": {},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = src.PushPrices(ctx, map[string]float64{"JEPI": 57.1, "BAD": 0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, src.PushRanking(ctx, "income_v1", contracts.NewRankingSnapshot(map[string]int{"JEPI": 1, "SCHD": 2})))

	growth, err := src.GrowthCache(ctx, []string{"JEPI", "SCHD"})
	require.NoError(t, err)
	require.Contains(t, growth, "JEPI")
	assert.NotContains(t, growth, "SCHD")
	assert.InDelta(t, 0.09, *growth["JEPI"].R52, 1e-12)

	prices, err := src.Prices(ctx, []string{"JEPI", "SCHD"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"JEPI": 57.1}, prices)

	ranking, ok, err := src.Ranking(ctx, "income_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, ranking.Len())

	_, ok, err = src.Ranking(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 24*time.Hour, cache.ttls["growth:JEPI"])
	assert.Equal(t, 15*time.Minute, cache.ttls["price:JEPI"])
	assert.Equal(t, 6*time.Hour, cache.ttls["ranking:income_v1"])
}

func TestRedisSource_Enrich(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	src := NewRedisSource(cache, logger.Nop())

	_, err := src.PushGrowth(ctx, contracts.GrowthCache{
		"JEPI": contracts.NewReturnWindow(0.5, 0.5, 0.5, 0.5),
		"SCHD": contracts.NewReturnWindow(0.01, 0.03, 0.05, 0.11),
	})
	require.NoError(t, err)
	_, err = src.PushPrices(ctx, map[string]float64{"SCHD": 99, "JEPI": 58})
	require.NoError(t, err)
	require.NoError(t, src.PushRanking(ctx, "income_v1", contracts.NewRankingSnapshot(map[string]int{"SCHD": 1})))

	snap, err := ParseSnapshot([]byte(sampleYAML))
	require.NoError(t, err)
	snap.Ranking = nil

	require.NoError(t, src.Enrich(ctx, snap, "income_v1"))

	// 스냅샷 값 우선
	assert.InDelta(t, 0.008, *snap.Growth["JEPI"].R4, 1e-12)
	assert.Equal(t, 27.5, snap.Prices["SCHD"])
	// 빈 곳만 채움
	assert.True(t, snap.Growth["SCHD"].Complete())
	assert.Equal(t, 58.0, snap.Prices["JEPI"])
	assert.Equal(t, map[string]int{"SCHD": 1}, snap.Ranking)
}

func TestRedisSource_Errors(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	cache.err = errors.New("connection refused")
	src := NewRedisSource(cache, logger.Nop())

	_, err := src.GrowthCache(ctx, []string{"JEPI"})
	assert.ErrorContains(t, err, "connection refused")

	_, _, err = src.Ranking(ctx, "income_v1")
	assert.Error(t, err)

	_, err = src.PushGrowth(ctx, contracts.GrowthCache{"JEPI": contracts.NewReturnWindow(0, 0, 0, 0)})
	assert.Error(t, err)
}
