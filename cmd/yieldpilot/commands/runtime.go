package commands

import (
	"context"
	"fmt"

	"github.com/wonny/yieldpilot/internal/marketdata"
	"github.com/wonny/yieldpilot/internal/strategyconfig"
	"github.com/wonny/yieldpilot/pkg/config"
	"github.com/wonny/yieldpilot/pkg/logger"
	"github.com/wonny/yieldpilot/pkg/redis"
)

// runtime bundles what every command needs
type runtime struct {
	cfg          *config.Config
	log          *logger.Logger
	strategy     *strategyconfig.Config
	strategyYAML []byte
}

// newRuntime loads env config, the logger and the strategy.
// strategyPath overrides STRATEGY_PATH; both empty means the built-in strategy.
func newRuntime(strategyPath string) (*runtime, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load strategy
	if strategyPath == "" {
		strategyPath = cfg.StrategyPath
	}
	strategy, data, err := strategyconfig.LoadOrDefault(strategyPath)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}
	for _, w := range strategyconfig.Warn(strategy) {
		log.WithFields(map[string]interface{}{
			"code":     w.Code,
			"strategy": strategy.Meta.StrategyID,
		}).Warn(w.Message)
	}

	return &runtime{
		cfg:          cfg,
		log:          log,
		strategy:     strategy,
		strategyYAML: data,
	}, nil
}

// openCache connects to Redis regardless of REDIS_ENABLED; the caller asked for it
func (rt *runtime) openCache(ctx context.Context) (*marketdata.RedisSource, func(), error) {
	rc := *rt.cfg
	rc.Redis.Enabled = true
	if rc.Redis.Prefix == "" {
		rc.Redis.Prefix = "yieldpilot"
	}

	client, err := redis.New(ctx, &rc)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	src := marketdata.NewRedisSource(redis.NewCache(client), rt.log)
	return src, func() { _ = client.Close() }, nil
}

// loadSnapshot reads the snapshot and optionally fills gaps from Redis
func (rt *runtime) loadSnapshot(ctx context.Context, path string, useRedis bool) (*marketdata.Snapshot, error) {
	if path == "" {
		return nil, fmt.Errorf("--snapshot is required")
	}
	snap, err := marketdata.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}

	// Redis는 보조 입력: 실패해도 스냅샷만으로 진행
	if useRedis {
		if err := rt.enrichFromCache(ctx, snap); err != nil {
			rt.log.WithError(err).Warn("Redis enrichment skipped, using snapshot only")
		}
	}

	rt.log.WithFields(map[string]interface{}{
		"snapshot":    snap.ID,
		"instruments": len(snap.Instruments),
		"positions":   len(snap.Positions),
	}).Debug("Snapshot loaded")
	return snap, nil
}

func (rt *runtime) enrichFromCache(ctx context.Context, snap *marketdata.Snapshot) error {
	src, closeFn, err := rt.openCache(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return src.Enrich(ctx, snap, rt.strategy.Meta.StrategyID)
}
