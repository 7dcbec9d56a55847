package chainlist

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	dto "chainscope/internal/adapter/storage/chainlist/dto"
	"chainscope/internal/domain/entity"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// loadOverlay reads the YAML overlay file. An empty path means no overlay.
func loadOverlay(path string) (*dto.OverlayFile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay %s: %w", path, err)
	}
	var overlay dto.OverlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse overlay %s: %w", path, err)
	}
	return &overlay, nil
}

// applyOverlay patches chains in place by chain ID and appends overlay
// chains that no source listed. The result stays ordered by chain ID.
func applyOverlay(chains []entity.Chain, overlay *dto.OverlayFile, logger *zap.Logger) []entity.Chain {
	if overlay == nil {
		return chains
	}

	index := make(map[int64]int, len(chains))
	for i, c := range chains {
		index[c.ChainID] = i
	}

	added := false
	for _, oc := range overlay.Chains {
		if oc.ChainID <= 0 {
			logger.Warn("Ignoring overlay entry without a chain ID", zap.String("name", oc.Name))
			continue
		}
		i, ok := index[oc.ChainID]
		if !ok {
			chains = append(chains, entity.Chain{ChainID: oc.ChainID, NetworkID: oc.ChainID})
			i = len(chains) - 1
			index[oc.ChainID] = i
			added = true
		}
		patchChain(&chains[i], oc, logger)
	}

	if added {
		slices.SortFunc(chains, func(a, b entity.Chain) int {
			return cmp.Compare(a.ChainID, b.ChainID)
		})
	}
	return chains
}

func patchChain(c *entity.Chain, oc dto.OverlayChain, logger *zap.Logger) {
	if oc.Name != "" {
		c.Name = oc.Name
	}
	if oc.ShortName != "" {
		c.ShortName = oc.ShortName
	}
	if oc.Icon != "" {
		c.Icon = oc.Icon
	}
	if oc.Network != "" {
		c.Network = entity.NetworkType(oc.Network)
	}
	if oc.Currency != nil {
		c.Currency = entity.Currency{
			Name:     oc.Currency.Name,
			Symbol:   oc.Currency.Symbol,
			Decimals: oc.Currency.Decimals,
		}
	}

	if len(oc.RemoveRPC) > 0 {
		c.RPC = slices.DeleteFunc(c.RPC, func(u entity.RPCURL) bool {
			return slices.Contains(oc.RemoveRPC, u.String())
		})
	}

	raws := make([]dto.RPCRaw, len(oc.RPC))
	for i, u := range oc.RPC {
		raws[i] = dto.RPCRaw{URL: u}
	}
	c.RPC = appendUnique(c.RPC, toDomainRPCs(oc.ChainID, raws, logger)...)

	for _, u := range oc.Explorers {
		c.Explorers = appendUniqueExplorers(c.Explorers, entity.Explorer{Name: c.Name, URL: u, Standard: "EIP3091"})
	}
}
