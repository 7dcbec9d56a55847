package repository

import (
	"context"
	"time"

	"chainscope/internal/domain/entity"
)

// CacheRepository caches the merged chain list and per-chain health snapshots.
type CacheRepository interface {
	// GetChains retrieves the cached list of all chains.
	GetChains(ctx context.Context) ([]entity.Chain, bool, error)

	// SetChains stores the list of all chains in the cache with a specified TTL.
	SetChains(ctx context.Context, chains []entity.Chain, ttl time.Duration) error

	// GetChainHealth retrieves the cached health snapshot for a specific chain ID.
	GetChainHealth(ctx context.Context, chainID int64) (entity.HealthSnapshot, bool, error)

	// SetChainHealth stores the health snapshot for a specific chain ID with a specified TTL.
	SetChainHealth(ctx context.Context, chainID int64, snapshot entity.HealthSnapshot, ttl time.Duration) error
}
