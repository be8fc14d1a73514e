package types

import (
	"fmt"

	"github.com/goran-ethernal/FactoryScout/internal/common"
)

// BlockFinality selects which chain head a discovery scan runs up to.
type BlockFinality string

const (
	// FinalityFinalized scans up to the finalized block tag
	FinalityFinalized BlockFinality = "finalized"

	// FinalitySafe scans up to the safe block tag
	FinalitySafe BlockFinality = "safe"

	// FinalityLatest scans up to the latest block minus a configured lag
	FinalityLatest BlockFinality = "latest"
)

// String returns the string representation of BlockFinality.
func (f BlockFinality) String() string {
	return string(f)
}

// IsValid checks if the BlockFinality value is valid.
func (f BlockFinality) IsValid() bool {
	switch f {
	case FinalityFinalized, FinalitySafe, FinalityLatest:
		return true
	default:
		return false
	}
}

// ScanHead returns the highest block a scan may reach given the head number reported
// for this finality. Only FinalityLatest applies lag; the result saturates at zero.
func (f BlockFinality) ScanHead(head, lag uint64) uint64 {
	if f != FinalityLatest {
		return head
	}
	if lag >= head {
		return 0
	}
	return head - lag
}

// ParseBlockFinality parses a case-insensitive string into a BlockFinality.
func ParseBlockFinality(s string) (BlockFinality, error) {
	f := BlockFinality(common.ToLowerWithTrim(s))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid block finality: %q (must be one of: finalized, safe, latest)", s)
	}
	return f, nil
}
