package repository

import (
	"context"

	"chainscope/internal/domain/entity"
)

// ChainRepository defines the interface for accessing chain data.
type ChainRepository interface {
	// GetAllChains retrieves the merged list of all chains from the configured sources.
	GetAllChains(ctx context.Context) ([]entity.Chain, error)
}
