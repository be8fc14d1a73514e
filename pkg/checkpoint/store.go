package checkpoint

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
)

// ErrStorage is wrapped by every checkpoint persistence failure.
var ErrStorage = errors.New("checkpoint storage error")

// Store defines the interface for the discovery checkpoint.
// Query and mutate operations are purely in-memory; only Save touches storage.
// This abstraction allows for easier testing and alternative implementations.
type Store interface {
	// LastBlock returns the block the next scan resumes at.
	LastBlock() uint64

	// SetLastBlock sets the resume block. Monotonicity is the caller's responsibility.
	SetLastBlock(block uint64)

	// Factories returns a snapshot of every known factory and its AMM count, in no particular order.
	Factories() []FactoryCount

	// AddFactory registers a new factory with an AMM count of zero.
	// It is a no-op if the address is already known.
	AddFactory(address common.Address, record factory.Record)

	// IncAMMs increments the AMM count of a known factory and reports whether the address was known.
	IncAMMs(address common.Address) bool

	// Save persists the full checkpoint. Errors wrap ErrStorage.
	Save() error
}

// FactoryCount pairs a discovered factory with the number of AMMs attributed to it.
type FactoryCount struct {
	Factory factory.Record `json:"factory"`
	AMMs    uint64         `json:"amms"`
}

// Entry is the persisted unit of discovery progress.
type Entry struct {
	// LastBlock is the first block not yet scanned; discovery resumes here
	LastBlock uint64 `json:"last_block"`

	// Factories maps factory address to its record and AMM count
	Factories map[common.Address]*FactoryCount `json:"factories"`
}

// NewEntry returns an empty entry starting at block zero.
func NewEntry() Entry {
	return Entry{
		Factories: make(map[common.Address]*FactoryCount),
	}
}

// Filter returns the factories whose AMM count is at least threshold.
func Filter(counts []FactoryCount, threshold uint64) []factory.Record {
	filtered := make([]factory.Record, 0, len(counts))
	for _, fc := range counts {
		if fc.AMMs >= threshold {
			filtered = append(filtered, fc.Factory)
		}
	}
	return filtered
}
