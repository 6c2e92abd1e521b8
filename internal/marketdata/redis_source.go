package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/yieldpilot/internal/contracts"
	"github.com/wonny/yieldpilot/pkg/logger"
	"github.com/wonny/yieldpilot/pkg/redis"
)

// Cache is the typed key/value store behind the source (pkg/redis.Cache)
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

var _ Cache = (*redis.Cache)(nil)

// fetchConcurrency bounds parallel cache reads
const fetchConcurrency = 8

// RedisSource reads and publishes growth windows, prices and rankings
// produced by the upstream collectors.
// ⭐ SSOT: 외부 캐시 접근은 여기서만
type RedisSource struct {
	cache  Cache
	logger *logger.Logger
}

// NewRedisSource creates a new cache-backed source
func NewRedisSource(cache Cache, log *logger.Logger) *RedisSource {
	return &RedisSource{
		cache:  cache,
		logger: log.Component("marketdata"),
	}
}

// GrowthCache loads the growth window of every ticker that has one
func (s *RedisSource) GrowthCache(ctx context.Context, tickers []string) (contracts.GrowthCache, error) {
	out := make(contracts.GrowthCache, len(tickers))
	var mu sync.Mutex

	err := s.fetchEach(ctx, tickers, func(ctx context.Context, ticker string) error {
		var w contracts.ReturnWindow
		found, err := s.cache.Get(ctx, redis.GrowthKey(ticker), &w)
		if err != nil || !found {
			return err
		}
		mu.Lock()
		out[ticker] = w
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load growth cache: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"requested": len(tickers),
		"found":     len(out),
	}).Debug("Growth windows loaded")
	return out, nil
}

// Prices loads the latest price of every ticker that has one
func (s *RedisSource) Prices(ctx context.Context, tickers []string) (map[string]float64, error) {
	out := make(map[string]float64, len(tickers))
	var mu sync.Mutex

	err := s.fetchEach(ctx, tickers, func(ctx context.Context, ticker string) error {
		var price float64
		found, err := s.cache.Get(ctx, redis.PriceKey(ticker), &price)
		if err != nil || !found {
			return err
		}
		mu.Lock()
		out[ticker] = price
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	return out, nil
}

// Ranking loads the latest ranking table of a strategy. ok is false on a miss.
func (s *RedisSource) Ranking(ctx context.Context, strategyID string) (contracts.RankingSnapshot, bool, error) {
	var ranks map[string]int
	found, err := s.cache.Get(ctx, redis.RankingKey(strategyID), &ranks)
	if err != nil {
		return contracts.RankingSnapshot{}, false, fmt.Errorf("load ranking %s: %w", strategyID, err)
	}
	if !found {
		return contracts.NewRankingSnapshot(nil), false, nil
	}
	return contracts.NewRankingSnapshot(ranks), true, nil
}

// PushGrowth publishes growth windows; incomplete windows are skipped
func (s *RedisSource) PushGrowth(ctx context.Context, growth contracts.GrowthCache) (int, error) {
	pushed := 0
	for ticker, w := range growth {
		if w.IsEmpty() {
			continue
		}
		if err := s.cache.Set(ctx, redis.GrowthKey(ticker), w, redis.TTLGrowth); err != nil {
			return pushed, fmt.Errorf("push growth %s: %w", ticker, err)
		}
		pushed++
	}
	return pushed, nil
}

// PushPrices publishes latest prices
func (s *RedisSource) PushPrices(ctx context.Context, prices map[string]float64) (int, error) {
	pushed := 0
	for ticker, price := range prices {
		if price <= 0 {
			continue
		}
		if err := s.cache.Set(ctx, redis.PriceKey(ticker), price, redis.TTLPrice); err != nil {
			return pushed, fmt.Errorf("push price %s: %w", ticker, err)
		}
		pushed++
	}
	return pushed, nil
}

// PushRanking publishes a ranking table for a strategy
func (s *RedisSource) PushRanking(ctx context.Context, strategyID string, ranking contracts.RankingSnapshot) error {
	if err := s.cache.Set(ctx, redis.RankingKey(strategyID), ranking.Map(), redis.TTLRanking); err != nil {
		return fmt.Errorf("push ranking %s: %w", strategyID, err)
	}
	return nil
}

// Enrich fills gaps of a snapshot from the cache: growth windows and prices
// the snapshot lacks, and the ranking when the snapshot has none.
// Values already in the snapshot win.
func (s *RedisSource) Enrich(ctx context.Context, snap *Snapshot, strategyID string) error {
	tickers := snap.Tickers()

	growth, err := s.GrowthCache(ctx, tickers)
	if err != nil {
		return err
	}
	if snap.Growth == nil {
		snap.Growth = make(contracts.GrowthCache, len(growth))
	}
	added := 0
	for ticker, w := range growth {
		if _, ok := snap.Growth[ticker]; !ok {
			snap.Growth[ticker] = w
			added++
		}
	}

	prices, err := s.Prices(ctx, tickers)
	if err != nil {
		return err
	}
	if snap.Prices == nil {
		snap.Prices = make(map[string]float64, len(prices))
	}
	for ticker, p := range prices {
		if _, ok := snap.Prices[ticker]; !ok {
			snap.Prices[ticker] = p
		}
	}

	if len(snap.Ranking) == 0 {
		ranking, ok, err := s.Ranking(ctx, strategyID)
		if err != nil {
			return err
		}
		if ok {
			snap.Ranking = ranking.Map()
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"strategy":     strategyID,
		"growth_added": added,
		"prices":       len(prices),
		"ranked":       len(snap.Ranking),
	}).Info("Snapshot enriched from cache")
	return nil
}

func (s *RedisSource) fetchEach(ctx context.Context, tickers []string, fn func(context.Context, string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			return fn(gctx, ticker)
		})
	}
	return g.Wait()
}
