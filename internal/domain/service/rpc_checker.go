package service

import (
	"context"
	"time"

	"chainscope/internal/domain/entity"
)

// RPCChecker probes a single RPC endpoint and reports whether it answered
// a JSON-RPC call and how long that took.
type RPCChecker interface {
	CheckRPC(ctx context.Context, rpcURL entity.RPCURL) (bool, time.Duration, error)
}
