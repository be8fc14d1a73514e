package discovery

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidChunkSize is returned when a run is started with a chunk size of zero.
var ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")

// SourceError is returned when the ledger source fails or the run is cancelled while waiting on it.
type SourceError struct {
	Op        string
	FromBlock uint64
	ToBlock   uint64
	Err       error
}

func (e *SourceError) Error() string {
	if e.Op == opCurrentHeight {
		return fmt.Sprintf("source %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("source %s failed for blocks %d-%d: %v", e.Op, e.FromBlock, e.ToBlock, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// MalformedLogError is returned when a discovered log carries no block number.
type MalformedLogError struct {
	Address common.Address
	Topic   common.Hash
}

func (e *MalformedLogError) Error() string {
	return fmt.Sprintf("malformed log from %s (topic %s): missing block number", e.Address.Hex(), e.Topic.Hex())
}

// UnknownSignatureError is returned when a log from an unknown address carries a topic
// that is not the discovery signature of a requested kind.
type UnknownSignatureError struct {
	Address common.Address
	Topic   common.Hash
	Err     error
}

func (e *UnknownSignatureError) Error() string {
	return fmt.Sprintf("log from %s: %v", e.Address.Hex(), e.Err)
}

func (e *UnknownSignatureError) Unwrap() error {
	return e.Err
}

// CheckpointError is returned when progress cannot be persisted.
type CheckpointError struct {
	LastBlock uint64
	Err       error
}

func (e *CheckpointError) Error() string {
	return fmt.Sprintf("failed to save checkpoint at block %d: %v", e.LastBlock, e.Err)
}

func (e *CheckpointError) Unwrap() error {
	return e.Err
}
