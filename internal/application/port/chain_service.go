package port

import (
	"context"

	"chainscope/internal/domain/entity"
)

// ChainFilter narrows a chain listing.
type ChainFilter struct {
	// Search matches case-insensitively against name, chain, short name and
	// title, or exactly against the decimal chain ID. Empty matches all.
	Search string
	// IncludeTestnets keeps test networks in the result.
	IncludeTestnets bool
}

// ChainService is the application API consumed by the delivery layer.
type ChainService interface {
	// ListChains returns the chains matching filter, ordered by chain ID.
	ListChains(ctx context.Context, filter ChainFilter) ([]entity.Chain, error)

	// GetChain returns one chain by ID.
	GetChain(ctx context.Context, chainID int64) (entity.Chain, error)

	// GetChainHealth returns the latest health snapshot of a chain's endpoints,
	// probing them when no snapshot is cached.
	GetChainHealth(ctx context.Context, chainID int64) (entity.HealthSnapshot, error)

	// GetRankedRPCs returns every RPC endpoint of a chain, best first.
	GetRankedRPCs(ctx context.Context, chainID int64) ([]entity.ScoredEndpoint, error)

	// GetWalletConfig builds the add-network payload for a browser wallet using
	// at most maxRPCs of the best endpoints. maxRPCs <= 0 uses the configured default.
	GetWalletConfig(ctx context.Context, chainID int64, maxRPCs int) (entity.WalletNetworkConfig, error)
}
