package memory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"chainscope/internal/config"
	"chainscope/internal/domain/entity"
	domainRepo "chainscope/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

// Cache keys
const (
	allChainsKey         = "all_chains_v3"
	chainHealthKeyPrefix = "chain_health_v3_"
)

// CacheRepository implements domainRepo.CacheRepository on top of go-cache.
// Health snapshots are copied on the way in and out so no two callers
// share a map.
type CacheRepository struct {
	cache       *cache.Cache
	logger      *zap.Logger
	fallbackTTL time.Duration
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.Config, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.Cache.GetDefaultExpiration()
	cleanupInterval := cfg.Cache.GetCleanupInterval()

	fallbackTTL := cfg.Checker.GetCacheTTL()
	if fallbackTTL <= 0 {
		fallbackTTL = defaultExpiration
	}

	logger = logger.Named("MemoryCacheStorage")
	logger.Info("Initialized go-cache for memory storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:       cache.New(defaultExpiration, cleanupInterval),
		logger:      logger,
		fallbackTTL: fallbackTTL,
	}
}

// GetChains retrieves the cached full list of chains, returning found status.
func (r *CacheRepository) GetChains(_ context.Context) ([]entity.Chain, bool, error) {
	x, found := r.cache.Get(allChainsKey)
	if !found {
		r.logger.Debug("Memory cache miss", zap.String("key", allChainsKey))
		return nil, false, nil
	}
	chains, ok := x.([]entity.Chain)
	if !ok {
		r.logger.Warn("Memory cache data type mismatch for key",
			zap.String("key", allChainsKey), zap.String("type", fmt.Sprintf("%T", x)),
		)
		return nil, false, nil
	}
	r.logger.Debug("Memory cache hit", zap.String("key", allChainsKey))
	return chains, true, nil
}

// SetChains caches the full list of chains with a given TTL.
func (r *CacheRepository) SetChains(_ context.Context, chains []entity.Chain, ttl time.Duration) error {
	ttl = r.ttlOrFallback(ttl)
	r.cache.Set(allChainsKey, chains, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", allChainsKey), zap.Duration("ttl", ttl))
	return nil
}

// GetChainHealth retrieves a copy of the cached health snapshot for a chain.
func (r *CacheRepository) GetChainHealth(_ context.Context, chainID int64) (entity.HealthSnapshot, bool, error) {
	key := chainHealthKey(chainID)
	x, found := r.cache.Get(key)
	if !found {
		r.logger.Debug("Memory cache miss", zap.String("key", key))
		return nil, false, nil
	}
	snapshot, ok := x.(entity.HealthSnapshot)
	if !ok {
		r.logger.Warn("Memory cache data type mismatch for key",
			zap.String("key", key), zap.String("type", fmt.Sprintf("%T", x)),
		)
		return nil, false, nil
	}
	r.logger.Debug("Memory cache hit", zap.String("key", key))
	if snapshot == nil {
		snapshot = entity.HealthSnapshot{}
	}
	return snapshot.Clone(), true, nil
}

// SetChainHealth caches a copy of the health snapshot for a chain.
func (r *CacheRepository) SetChainHealth(
	_ context.Context,
	chainID int64,
	snapshot entity.HealthSnapshot,
	ttl time.Duration,
) error {
	key := chainHealthKey(chainID)
	ttl = r.ttlOrFallback(ttl)
	stored := snapshot.Clone()
	if stored == nil {
		stored = entity.HealthSnapshot{}
	}
	r.cache.Set(key, stored, ttl)
	r.logger.Debug("Memory cache set",
		zap.String("key", key), zap.Duration("ttl", ttl), zap.Int("endpoints", len(stored)),
	)
	return nil
}

func (r *CacheRepository) ttlOrFallback(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return r.fallbackTTL
}

func chainHealthKey(chainID int64) string {
	return chainHealthKeyPrefix + strconv.FormatInt(chainID, 10)
}
