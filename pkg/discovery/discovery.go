package discovery

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
)

// Source defines the interface to the ledger a discovery run scans.
// This abstraction allows for easier testing and alternative implementations.
type Source interface {
	// CurrentHeight returns the highest block a scan may reach.
	CurrentHeight(ctx context.Context) (uint64, error)

	// GetLogs returns every log in the inclusive range [from, to] whose first topic is one of topics,
	// in ledger order.
	GetLogs(ctx context.Context, topics []common.Hash, from, to uint64) ([]LogEntry, error)
}

// LogEntry is the part of a ledger log discovery consumes.
type LogEntry struct {
	// Address is the contract that emitted the log
	Address common.Address

	// Topic is the first topic of the log, the event signature
	Topic common.Hash

	// BlockNumber is the block the log was included in; nil for logs not yet in a block
	BlockNumber *uint64
}

// Params describes a single discovery run.
type Params struct {
	// Kinds are the factory kinds to look for; an empty set scans without querying logs
	Kinds []factory.Kind

	// AMMThreshold is the minimum number of AMMs a factory needs to be returned
	AMMThreshold uint64

	// ChunkSize is the number of blocks scanned per checkpoint; must be greater than 0
	ChunkSize uint64

	// CheckpointPath is the file progress is persisted to
	CheckpointPath string

	// StartBlock is the lowest block scanned when the checkpoint is behind it
	StartBlock uint64
}

// Discoverer defines the interface for factory discovery.
type Discoverer interface {
	// Discover scans from the checkpoint to the current height and returns every known factory
	// that created at least AMMThreshold AMMs.
	Discover(ctx context.Context, params Params) ([]factory.Record, error)

	// Follow runs Discover every interval until ctx is done, handing each result to fn.
	Follow(ctx context.Context, params Params, interval time.Duration, fn func([]factory.Record) error) error
}
