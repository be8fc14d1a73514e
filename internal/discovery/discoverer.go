package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/FactoryScout/internal/checkpoint"
	"github.com/goran-ethernal/FactoryScout/internal/common"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/FactoryScout/pkg/checkpoint"
	"github.com/goran-ethernal/FactoryScout/pkg/discovery"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
)

const (
	opCurrentHeight = "current height"
	opGetLogs       = "get logs"
)

// Compile-time check to ensure Discoverer implements discovery.Discoverer interface.
var _ discovery.Discoverer = (*Discoverer)(nil)

// Discoverer scans a ledger source for factory creation logs and counts the AMMs each factory created.
type Discoverer struct {
	source discovery.Source
	log    *logger.Logger
}

// New creates a new Discoverer reading from source.
func New(source discovery.Source, log *logger.Logger) *Discoverer {
	return &Discoverer{
		source: source,
		log:    log.WithComponent(common.ComponentDiscovery),
	}
}

// chunkStats summarizes a processed chunk.
type chunkStats struct {
	logs         int
	amms         int
	newFactories int
}

// Discover scans every block from the checkpoint up to the source's current height in chunks of
// params.ChunkSize, saving the checkpoint after each chunk, and returns the factories with at least
// params.AMMThreshold AMMs. A failed run returns no results; everything up to the last saved chunk
// is kept and the next run resumes from there.
func (d *Discoverer) Discover(ctx context.Context, params discovery.Params) ([]factory.Record, error) {
	if params.ChunkSize == 0 {
		return nil, ErrInvalidChunkSize
	}

	store := checkpoint.LoadOrDefault(params.CheckpointPath, d.log.WithComponent(common.ComponentCheckpoint))
	decoder := factory.NewDecoder(params.Kinds...)

	from := max(store.LastBlock(), params.StartBlock)

	current, err := d.source.CurrentHeight(ctx)
	if err != nil {
		return nil, &SourceError{Op: opCurrentHeight, Err: err}
	}
	headBlockSet(current)

	d.log.Infow("starting discovery",
		"from_block", from,
		"current_block", current,
		"kinds", decoder.Kinds(),
		"chunk_size", params.ChunkSize,
		"known_factories", store.Len(),
	)

	start := time.Now()
	for from <= current {
		target := current
		if current-from >= params.ChunkSize {
			target = from + params.ChunkSize - 1
		}

		chunkStart := time.Now()
		stats, err := d.processChunk(ctx, store, decoder, from, target)
		if err != nil {
			return nil, err
		}

		store.SetLastBlock(target + 1)
		if err := save(store); err != nil {
			return nil, err
		}

		chunkLog(stats.logs, stats.amms, time.Since(chunkStart))

		d.log.Debugw("chunk processed",
			"from_block", from,
			"to_block", target,
			"logs", stats.logs,
			"amms", stats.amms,
			"new_factories", stats.newFactories,
		)

		from = target + 1
	}

	store.SetLastBlock(max(store.LastBlock(), current+1))
	if err := save(store); err != nil {
		return nil, err
	}

	result := pkgcheckpoint.Filter(store.Factories(), params.AMMThreshold)

	d.log.Infow("discovery complete",
		"last_block", store.LastBlock(),
		"known_factories", store.Len(),
		"matching_factories", len(result),
		"amm_threshold", params.AMMThreshold,
		"duration", time.Since(start),
	)

	return result, nil
}

// Follow runs Discover immediately and then every interval until ctx is done, handing each
// result to fn. Source failures are logged and retried on the next tick; any other error,
// including one returned by fn, stops following. Cancelling ctx returns nil.
func (d *Discoverer) Follow(
	ctx context.Context,
	params discovery.Params,
	interval time.Duration,
	fn func([]factory.Record) error,
) error {
	if interval <= 0 {
		return fmt.Errorf("follow interval must be greater than 0, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		records, err := d.Discover(ctx, params)
		switch {
		case ctx.Err() != nil:
			d.log.Infow("stopping discovery", "reason", ctx.Err())
			return nil
		case err != nil:
			var srcErr *SourceError
			if !errors.As(err, &srcErr) {
				return err
			}
			d.log.Warnw("discovery run failed, retrying on next tick", "error", err, "interval", interval)
		default:
			if err := fn(records); err != nil {
				return fmt.Errorf("failed to handle discovery result: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			d.log.Infow("stopping discovery", "reason", ctx.Err())
			return nil
		case <-ticker.C:
		}
	}
}

// processChunk folds every log in [from, to] into store. Every log must carry a block number.
// A log from a known factory counts as one AMM; a log from an unknown address registers that
// address as a new factory.
func (d *Discoverer) processChunk(
	ctx context.Context,
	store pkgcheckpoint.Store,
	decoder *factory.Decoder,
	from, to uint64,
) (chunkStats, error) {
	var stats chunkStats

	topics := decoder.Topics()
	if len(topics) == 0 {
		return stats, nil
	}

	logs, err := d.source.GetLogs(ctx, topics, from, to)
	if err != nil {
		return stats, &SourceError{Op: opGetLogs, FromBlock: from, ToBlock: to, Err: err}
	}
	stats.logs = len(logs)

	for _, entry := range logs {
		if entry.BlockNumber == nil {
			return stats, &MalformedLogError{Address: entry.Address, Topic: entry.Topic}
		}

		if store.IncAMMs(entry.Address) {
			stats.amms++
			continue
		}

		record, err := decoder.Decode(entry.Topic, entry.Address, *entry.BlockNumber)
		if err != nil {
			if errors.Is(err, factory.ErrUnknownSignature) {
				return stats, &UnknownSignatureError{Address: entry.Address, Topic: entry.Topic, Err: err}
			}
			return stats, fmt.Errorf("failed to build record for %s: %w", entry.Address.Hex(), err)
		}

		store.AddFactory(entry.Address, record)
		stats.newFactories++
		factoryDiscoveredInc(record.Kind.String())

		d.log.Debugw("factory discovered",
			"address", entry.Address.Hex(),
			"kind", record.Kind,
			"creation_block", record.CreationBlock,
		)
	}

	return stats, nil
}

func save(store pkgcheckpoint.Store) error {
	if err := store.Save(); err != nil {
		return &CheckpointError{LastBlock: store.LastBlock(), Err: err}
	}
	checkpointBlockSet(store.LastBlock())
	return nil
}
