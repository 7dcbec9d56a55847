package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"chainscope/internal/application/port"
	"chainscope/internal/config"
	"chainscope/internal/domain"
	"chainscope/internal/domain/entity"
	"chainscope/internal/domain/ranking"
	domainRepo "chainscope/internal/domain/repository"
	domainService "chainscope/internal/domain/service"

	"go.uber.org/zap"
)

// Compile-time check to ensure chainService implements ChainService
var _ port.ChainService = (*chainService)(nil)

// chainService implements port.ChainService on top of the chain repository,
// the cache and the RPC checker.
type chainService struct {
	chainRepo  domainRepo.ChainRepository
	cacheRepo  domainRepo.CacheRepository
	rpcChecker domainService.RPCChecker
	logger     *zap.Logger
	cfg        config.Config
	rootCtx    context.Context
	isChecking *atomic.Bool
}

// NewChainService creates the chain service and starts its background
// health checker, which runs until rootCtx is cancelled.
func NewChainService(
	rootCtx context.Context,
	chainRepo domainRepo.ChainRepository,
	cacheRepo domainRepo.CacheRepository,
	rpcChecker domainService.RPCChecker,
	logger *zap.Logger,
	cfg config.Config,
) port.ChainService {
	s := &chainService{
		chainRepo:  chainRepo,
		cacheRepo:  cacheRepo,
		rpcChecker: rpcChecker,
		logger:     logger.Named("ChainService"),
		cfg:        cfg,
		rootCtx:    rootCtx,
		isChecking: new(atomic.Bool),
	}

	go s.startBackgroundChecker()

	return s
}

// ListChains returns the cached chain list, fetching it on a miss.
func (s *chainService) ListChains(ctx context.Context, filter port.ChainFilter) ([]entity.Chain, error) {
	chains, err := s.allChains(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]entity.Chain, 0, len(chains))
	for _, c := range chains {
		if !filter.IncludeTestnets && c.IsTestnet() {
			continue
		}
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// GetChain returns a single chain or domain.ErrChainNotFound.
func (s *chainService) GetChain(ctx context.Context, chainID int64) (entity.Chain, error) {
	chains, err := s.allChains(ctx)
	if err != nil {
		return entity.Chain{}, err
	}
	for _, c := range chains {
		if c.ChainID == chainID {
			return c, nil
		}
	}
	s.logger.Debug("Chain not found", zap.Int64("chainId", chainID))
	return entity.Chain{}, fmt.Errorf("%w: chain with ID %d", domain.ErrChainNotFound, chainID)
}

// GetChainHealth returns the chain's health snapshot.
func (s *chainService) GetChainHealth(ctx context.Context, chainID int64) (entity.HealthSnapshot, error) {
	chain, err := s.GetChain(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return s.chainHealth(ctx, chain), nil
}

// GetRankedRPCs ranks the chain's endpoints against its latest health snapshot.
func (s *chainService) GetRankedRPCs(ctx context.Context, chainID int64) ([]entity.ScoredEndpoint, error) {
	chain, err := s.GetChain(ctx, chainID)
	if err != nil {
		return nil, err
	}
	if len(chain.RPC) == 0 {
		return nil, fmt.Errorf("%w: chain %d declares no RPCs", domain.ErrNoRPCsAvailable, chainID)
	}

	snapshot := s.chainHealth(ctx, chain)
	ranked := ranking.Rank(chain.RPC, snapshot)

	s.logger.Debug("Ranked chain RPCs",
		zap.Int64("chainId", chainID),
		zap.Int("endpoints", len(ranked)),
		zap.String("best", ranked[0].URL.String()),
		zap.String("bestStatus", string(ranked[0].Status)),
	)
	return ranked, nil
}

// GetWalletConfig builds a wallet_addEthereumChain payload from the ranking.
// Websocket endpoints and repeated URLs are skipped, and offline endpoints
// are skipped as long as anything better is left.
func (s *chainService) GetWalletConfig(
	ctx context.Context,
	chainID int64,
	maxRPCs int,
) (entity.WalletNetworkConfig, error) {
	chain, err := s.GetChain(ctx, chainID)
	if err != nil {
		return entity.WalletNetworkConfig{}, err
	}

	var ranked []entity.ScoredEndpoint
	if len(chain.RPC) > 0 {
		ranked = ranking.Rank(chain.RPC, s.chainHealth(ctx, chain))
	}
	candidates := walletCandidates(ranked)
	if len(candidates) == 0 {
		return entity.WalletNetworkConfig{}, fmt.Errorf("%w: chain %d has no HTTP RPCs for a wallet",
			domain.ErrNoRPCsAvailable, chainID,
		)
	}

	if maxRPCs <= 0 {
		maxRPCs = s.cfg.Wallet.MaxRPCURLs
	}
	top := ranking.TopURLs(candidates, maxRPCs)

	rpcURLs := make([]string, len(top))
	for i, u := range top {
		rpcURLs[i] = u.String()
	}

	var explorers []string
	for _, e := range chain.Explorers {
		if e.URL != "" {
			explorers = append(explorers, e.URL)
		}
	}

	var icons []string
	if strings.HasPrefix(chain.Icon, "https://") || strings.HasPrefix(chain.Icon, "http://") {
		icons = []string{chain.Icon}
	}

	return entity.WalletNetworkConfig{
		ChainID:   "0x" + strconv.FormatInt(chain.ChainID, 16),
		ChainName: chain.Name,
		NativeCurrency: entity.WalletCurrency{
			Name:     chain.Currency.Name,
			Symbol:   chain.Currency.Symbol,
			Decimals: chain.Currency.Decimals,
		},
		RPCURLs:           rpcURLs,
		BlockExplorerURLs: explorers,
		IconURLs:          icons,
	}, nil
}

// allChains serves the chain list from cache, falling back to the repository.
// A miss also kicks off a background health check of the fetched chains.
func (s *chainService) allChains(ctx context.Context) ([]entity.Chain, error) {
	cached, found, err := s.cacheRepo.GetChains(ctx)
	if err != nil {
		s.logger.Warn("Cache error when getting all chains", zap.Error(err))
	}
	if found {
		return cached, nil
	}

	s.logger.Debug("Cache miss for all chains, fetching from repository")
	chains, err := s.chainRepo.GetAllChains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all chains from repository: %w", err)
	}

	if err := s.cacheRepo.SetChains(ctx, chains, s.cfg.Checker.GetCacheTTL()); err != nil {
		s.logger.Error("Failed to cache chain list", zap.Error(err))
	}

	s.triggerHealthCheck(chains)
	return chains, nil
}

// chainHealth returns the cached snapshot for chain, probing its RPCs on a miss.
func (s *chainService) chainHealth(ctx context.Context, chain entity.Chain) entity.HealthSnapshot {
	snapshot, found, err := s.cacheRepo.GetChainHealth(ctx, chain.ChainID)
	if err != nil {
		s.logger.Warn("Cache error when getting chain health",
			zap.Int64("chainId", chain.ChainID), zap.Error(err),
		)
	}
	if found {
		return snapshot
	}

	s.logger.Debug("Cache miss for chain health, probing RPCs",
		zap.Int64("chainId", chain.ChainID), zap.Int("rpcCount", len(chain.RPC)),
	)
	snapshot = s.probeChain(ctx, chain.RPC)

	if err := s.cacheRepo.SetChainHealth(ctx, chain.ChainID, snapshot, s.cfg.Checker.GetCacheTTL()); err != nil {
		s.logger.Error("Failed to cache chain health",
			zap.Int64("chainId", chain.ChainID), zap.Error(err),
		)
	}
	return snapshot
}

func matchesSearch(c entity.Chain, search string) bool {
	if strconv.FormatInt(c.ChainID, 10) == search {
		return true
	}
	for _, field := range []string{c.Name, c.Chain, c.ShortName, c.Title} {
		if field != "" && strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// walletCandidates keeps the first occurrence of each HTTP(S) endpoint and
// drops offline ones unless nothing else is left.
func walletCandidates(ranked []entity.ScoredEndpoint) []entity.ScoredEndpoint {
	var httpOnly []entity.ScoredEndpoint
	seen := make(map[entity.RPCURL]struct{}, len(ranked))
	reachable := 0
	for _, ep := range ranked {
		if !ep.Protocol.IsHTTP() {
			continue
		}
		if _, dup := seen[ep.URL]; dup {
			continue
		}
		seen[ep.URL] = struct{}{}
		httpOnly = append(httpOnly, ep)
		if ep.Status != entity.StatusOffline {
			reachable++
		}
	}
	if reachable == 0 || reachable == len(httpOnly) {
		return httpOnly
	}

	out := make([]entity.ScoredEndpoint, 0, reachable)
	for _, ep := range httpOnly {
		if ep.Status != entity.StatusOffline {
			out = append(out, ep)
		}
	}
	return out
}
