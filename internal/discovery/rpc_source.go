package discovery

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/FactoryScout/internal/common"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	irpc "github.com/goran-ethernal/FactoryScout/internal/rpc"
	itypes "github.com/goran-ethernal/FactoryScout/internal/types"
	"github.com/goran-ethernal/FactoryScout/pkg/discovery"
	"github.com/goran-ethernal/FactoryScout/pkg/rpc"
)

// Compile-time check to ensure RPCSource implements discovery.Source interface.
var _ discovery.Source = (*RPCSource)(nil)

// RPCSource reads the chain through an Ethereum JSON-RPC client.
type RPCSource struct {
	client       rpc.EthClient
	finality     itypes.BlockFinality
	finalizedLag uint64
	log          *logger.Logger
}

// NewRPCSource creates a source that scans up to the head selected by finality.
// finalizedLag is only applied with itypes.FinalityLatest.
func NewRPCSource(
	client rpc.EthClient,
	finality itypes.BlockFinality,
	finalizedLag uint64,
	log *logger.Logger,
) *RPCSource {
	return &RPCSource{
		client:       client,
		finality:     finality,
		finalizedLag: finalizedLag,
		log:          log.WithComponent(common.ComponentRPC),
	}
}

// CurrentHeight returns the number of the finalized, safe or lagged latest block.
func (s *RPCSource) CurrentHeight(ctx context.Context) (uint64, error) {
	var (
		header *types.Header
		err    error
	)

	switch s.finality {
	case itypes.FinalityFinalized:
		header, err = s.client.GetFinalizedBlockHeader(ctx)
	case itypes.FinalitySafe:
		header, err = s.client.GetSafeBlockHeader(ctx)
	case itypes.FinalityLatest:
		header, err = s.client.GetLatestBlockHeader(ctx)
	default:
		return 0, fmt.Errorf("invalid finality mode: %s", s.finality)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get %s block header: %w", s.finality, err)
	}
	if header == nil || header.Number == nil {
		return 0, fmt.Errorf("%s block header has no number", s.finality)
	}

	return s.finality.ScanHead(header.Number.Uint64(), s.finalizedLag), nil
}

// GetLogs returns the logs in [from, to] whose first topic is one of topics.
// Ranges the node refuses as too large are split and fetched piecewise, so the result
// always covers the whole requested range in order.
func (s *RPCSource) GetLogs(
	ctx context.Context,
	topics []ethcommon.Hash,
	from, to uint64,
) ([]discovery.LogEntry, error) {
	logs, err := s.fetchLogs(ctx, topics, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]discovery.LogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, toLogEntry(l))
	}

	return entries, nil
}

// fetchLogs splits the range whenever the node reports too many results: at the range the
// node suggests when it starts at from, otherwise in half.
func (s *RPCSource) fetchLogs(
	ctx context.Context,
	topics []ethcommon.Hash,
	from, to uint64,
) ([]types.Log, error) {
	logs, err := s.client.GetLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Topics:    [][]ethcommon.Hash{topics},
	})
	if err == nil {
		return logs, nil
	}

	tooMany, errData := irpc.IsTooManyResultsError(err)
	if !tooMany {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("cannot split range further, single block %d has too many logs: %w", from, err)
	}

	mid := from + (to-from)/2
	if suggestedFrom, suggestedTo, ok := irpc.ParseSuggestedBlockRange(errData); ok &&
		suggestedFrom == from && suggestedTo < to {
		mid = suggestedTo
	}

	rangeSplitInc()
	s.log.Infow("too many logs, splitting block range",
		"from_block", from,
		"to_block", to,
		"split_at", mid,
	)

	head, err := s.fetchLogs(ctx, topics, from, mid)
	if err != nil {
		return nil, err
	}

	tail, err := s.fetchLogs(ctx, topics, mid+1, to)
	if err != nil {
		return nil, err
	}

	return append(head, tail...), nil
}

// toLogEntry keeps the fields discovery needs. Logs without a block hash are not part
// of a block yet and get no block number.
func toLogEntry(l types.Log) discovery.LogEntry {
	entry := discovery.LogEntry{Address: l.Address}

	if len(l.Topics) > 0 {
		entry.Topic = l.Topics[0]
	}

	if l.BlockHash != (ethcommon.Hash{}) {
		blockNumber := l.BlockNumber
		entry.BlockNumber = &blockNumber
	}

	return entry
}
