package chainlist

import (
	"slices"

	"chainscope/internal/domain/entity"
)

// mergeChains folds several source lists into one, keyed by chain ID.
// The first source that lists a chain owns its metadata; RPCs, faucets and
// explorers from later sources are appended when not already present.
// The result is ordered by chain ID.
func mergeChains(sources ...[]entity.Chain) []entity.Chain {
	byID := make(map[int64]*entity.Chain)
	var order []int64

	for _, chains := range sources {
		for _, c := range chains {
			existing, ok := byID[c.ChainID]
			if !ok {
				chainCopy := c
				chainCopy.RPC = appendUnique(nil, c.RPC...)
				chainCopy.Faucets = appendUnique(nil, c.Faucets...)
				chainCopy.Explorers = appendUniqueExplorers(nil, c.Explorers...)
				byID[c.ChainID] = &chainCopy
				order = append(order, c.ChainID)
				continue
			}
			existing.RPC = appendUnique(existing.RPC, c.RPC...)
			existing.Faucets = appendUnique(existing.Faucets, c.Faucets...)
			existing.Explorers = appendUniqueExplorers(existing.Explorers, c.Explorers...)
		}
	}

	slices.Sort(order)
	merged := make([]entity.Chain, 0, len(order))
	for _, id := range order {
		merged = append(merged, *byID[id])
	}
	return merged
}

func appendUnique[T comparable](dst []T, items ...T) []T {
	for _, item := range items {
		if !slices.Contains(dst, item) {
			dst = append(dst, item)
		}
	}
	return dst
}

func appendUniqueExplorers(dst []entity.Explorer, items ...entity.Explorer) []entity.Explorer {
	for _, item := range items {
		if !slices.ContainsFunc(dst, func(e entity.Explorer) bool { return e.URL == item.URL }) {
			dst = append(dst, item)
		}
	}
	return dst
}
