package rpc

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthClient is the subset of Ethereum JSON-RPC that factory discovery needs:
// head lookups at each finality level and log queries over a block range.
type EthClient interface {
	Close()

	// GetLogs returns the logs matching query. A range the node considers too large
	// fails with an error the caller can split on.
	GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	GetLatestBlockHeader(ctx context.Context) (*types.Header, error)
	GetSafeBlockHeader(ctx context.Context) (*types.Header, error)
	GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error)
}
