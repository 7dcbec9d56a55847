package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"chainscope/internal/domain/entity"
)

type fakeChainRepo struct {
	mu     sync.Mutex
	chains []entity.Chain
	err    error
	calls  int
}

func (f *fakeChainRepo) GetAllChains(_ context.Context) ([]entity.Chain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.chains, nil
}

func (f *fakeChainRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCache struct {
	mu       sync.Mutex
	chains   []entity.Chain
	hasChain bool
	health   map[int64]entity.HealthSnapshot
	getErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{health: map[int64]entity.HealthSnapshot{}}
}

func (f *fakeCache) GetChains(_ context.Context) ([]entity.Chain, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.chains, f.hasChain, nil
}

func (f *fakeCache) SetChains(_ context.Context, chains []entity.Chain, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chains = chains
	f.hasChain = true
	return nil
}

func (f *fakeCache) GetChainHealth(_ context.Context, chainID int64) (entity.HealthSnapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	snapshot, ok := f.health[chainID]
	return snapshot.Clone(), ok, nil
}

func (f *fakeCache) SetChainHealth(_ context.Context, chainID int64, snapshot entity.HealthSnapshot, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.health[chainID] = snapshot.Clone()
	return nil
}

func (f *fakeCache) healthFor(chainID int64) (entity.HealthSnapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot, ok := f.health[chainID]
	return snapshot, ok
}

type probeResult struct {
	working bool
	latency time.Duration
	err     error
}

type fakeChecker struct {
	mu      sync.Mutex
	results map[entity.RPCURL]probeResult
	probed  map[entity.RPCURL]int
}

func newFakeChecker(results map[entity.RPCURL]probeResult) *fakeChecker {
	return &fakeChecker{results: results, probed: map[entity.RPCURL]int{}}
}

func (f *fakeChecker) CheckRPC(_ context.Context, rpcURL entity.RPCURL) (bool, time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed[rpcURL]++
	res, ok := f.results[rpcURL]
	if !ok {
		return false, 0, errors.New("connection refused")
	}
	return res.working, res.latency, res.err
}

func (f *fakeChecker) probeCount(u entity.RPCURL) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probed[u]
}
