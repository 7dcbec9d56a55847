package application

import (
	"context"
	"sync"
	"time"

	"chainscope/internal/domain/entity"

	"go.uber.org/zap"
)

// classify turns one probe result into a health record. A working endpoint
// slower than slowThreshold is slow; a zero threshold disables that tier.
func classify(isWorking bool, latency time.Duration, err error, slowThreshold time.Duration) entity.HealthRecord {
	if err != nil || !isWorking {
		return entity.HealthRecord{Status: entity.StatusOffline}
	}

	latencyMs := latency.Milliseconds()
	rec := entity.HealthRecord{Status: entity.StatusOnline, LatencyMs: &latencyMs}
	if slowThreshold > 0 && latency > slowThreshold {
		rec.Status = entity.StatusSlow
	}
	return rec
}

// probeChain checks every distinct URL of one chain with a bounded worker
// pool and returns the resulting snapshot. URLs with an unknown protocol are
// recorded offline without a probe. URLs left unprobed because ctx ended
// are absent from the snapshot.
func (s *chainService) probeChain(ctx context.Context, rpcs []entity.RPCURL) entity.HealthSnapshot {
	snapshot := make(entity.HealthSnapshot, len(rpcs))
	if len(rpcs) == 0 {
		return snapshot
	}

	unique := make([]entity.RPCURL, 0, len(rpcs))
	seen := make(map[entity.RPCURL]struct{}, len(rpcs))
	for _, u := range rpcs {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}

	numWorkers := s.cfg.Checker.MaxWorkers
	if numWorkers <= 0 {
		numWorkers = 10
	}
	numWorkers = min(numWorkers, len(unique))

	timeout := s.cfg.Checker.GetTimeout()
	slowThreshold := s.cfg.Ranking.SlowThreshold

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	jobs := make(chan entity.RPCURL, len(unique))

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for rpcURL := range jobs {
				if ctx.Err() != nil {
					return
				}

				var rec entity.HealthRecord
				if entity.ProtocolOf(rpcURL) == entity.ProtocolUnknown {
					s.logger.Warn("RPC URL with unknown protocol, marking offline", zap.String("url", rpcURL.String()))
					rec = entity.HealthRecord{Status: entity.StatusOffline}
				} else {
					checkCtx, cancel := ctx, context.CancelFunc(func() {})
					if timeout > 0 {
						checkCtx, cancel = context.WithTimeout(ctx, timeout)
					}
					isWorking, latency, err := s.rpcChecker.CheckRPC(checkCtx, rpcURL)
					cancel()
					if err != nil {
						s.logger.Debug("RPC check failed",
							zap.Int("workerID", workerID), zap.String("rpc", rpcURL.String()), zap.Error(err),
						)
					}
					rec = classify(isWorking, latency, err, slowThreshold)
				}

				mu.Lock()
				snapshot[rpcURL] = rec
				mu.Unlock()
			}
		}(w)
	}

	for _, u := range unique {
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	return snapshot
}

// triggerHealthCheck starts a background check of chains unless one is already running.
func (s *chainService) triggerHealthCheck(chains []entity.Chain) {
	if len(chains) == 0 {
		return
	}
	if !s.isChecking.CompareAndSwap(false, true) {
		s.logger.Debug("Background check already in progress, skipping new check start")
		return
	}
	s.logger.Info("Starting background health check", zap.Int("chainCount", len(chains)))
	go func() {
		defer s.isChecking.Store(false)
		s.performHealthChecks(s.rootCtx, chains)
	}()
}

// performHealthChecks probes all chains with a chain-level worker pool and
// stores one snapshot per chain.
func (s *chainService) performHealthChecks(ctx context.Context, chains []entity.Chain) {
	numChainWorkers := s.cfg.Checker.MaxWorkers / 5
	if numChainWorkers <= 0 {
		numChainWorkers = 1
	}
	numChainWorkers = min(numChainWorkers, len(chains))

	cacheTTL := s.cfg.Checker.GetCacheTTL()
	var (
		wg        sync.WaitGroup
		processed int
		mu        sync.Mutex
	)
	jobs := make(chan entity.Chain)

	for w := 0; w < numChainWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chain := range jobs {
				snapshot := s.probeChain(ctx, chain.RPC)
				if ctx.Err() != nil {
					return
				}
				if err := s.cacheRepo.SetChainHealth(ctx, chain.ChainID, snapshot, cacheTTL); err != nil {
					s.logger.Warn("Failed to cache chain health in background task",
						zap.Int64("chainId", chain.ChainID), zap.Error(err),
					)
					continue
				}
				mu.Lock()
				processed++
				mu.Unlock()
			}
		}()
	}

sendLoop:
	for _, chain := range chains {
		select {
		case jobs <- chain:
		case <-ctx.Done():
			s.logger.Info("Context cancelled before sending all chain jobs")
			break sendLoop
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		s.logger.Warn("Background health check interrupted",
			zap.Int("processedCount", processed), zap.Int("expectedCount", len(chains)), zap.Error(ctx.Err()),
		)
		return
	}
	s.logger.Info("Background health check finished",
		zap.Int("processedCount", processed), zap.Int("expectedCount", len(chains)),
	)
}

// startBackgroundChecker refreshes every chain's health on a ticker until
// the root context is cancelled.
func (s *chainService) startBackgroundChecker() {
	if s.cfg.Checker.RunOnStartup {
		s.refreshAll()
	}

	interval := s.cfg.Checker.GetCheckInterval()
	if interval <= 0 {
		s.logger.Info("Background checker disabled (interval <= 0)")
		return
	}

	s.logger.Info("Starting background checker", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshAll()
		case <-s.rootCtx.Done():
			s.logger.Info("Background checker stopping due to context cancellation.")
			return
		}
	}
}

// refreshAll refetches the chain list, replaces the cached copy and checks it.
func (s *chainService) refreshAll() {
	if s.isChecking.Load() {
		s.logger.Debug("Background checker tick: check already in progress.")
		return
	}

	chains, err := s.chainRepo.GetAllChains(s.rootCtx)
	if err != nil {
		if s.rootCtx.Err() != nil {
			s.logger.Warn("Periodic chain fetch cancelled due to application shutdown")
		} else {
			s.logger.Error("Error fetching chains during periodic background check", zap.Error(err))
		}
		return
	}

	if err := s.cacheRepo.SetChains(s.rootCtx, chains, s.cfg.Checker.GetCacheTTL()); err != nil {
		s.logger.Error("Failed to cache chain list in background task", zap.Error(err))
	}
	s.triggerHealthCheck(chains)
}
