package domain

import "errors"

var (
	// ErrChainNotFound means the requested chain was not found.
	ErrChainNotFound = errors.New("chain not found")

	// ErrNoRPCsAvailable means the chain declares no usable RPC endpoints.
	ErrNoRPCsAvailable = errors.New("no RPCs available for the chain")

	// ErrUpstreamSourceFailure means every configured upstream chain list failed.
	ErrUpstreamSourceFailure = errors.New("upstream source failure")

	// ErrCacheFailure means an internal error occurred while interacting with the cache (not a cache miss).
	ErrCacheFailure = errors.New("cache operation failed")
)
