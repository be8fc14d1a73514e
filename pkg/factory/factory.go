// Package factory describes the AMM factory templates FactoryScout knows how to discover.
//
// A Kind is a closed enumeration. Every Kind maps to exactly one discovery event
// signature: the topic0 of the event a factory of that kind emits whenever it
// creates a new pool.
package factory

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Kind identifies a supported factory template.
type Kind string

const (
	// KindUniswapV2 is a Uniswap V2 style factory (PairCreated).
	KindUniswapV2 Kind = "uniswap_v2"

	// KindUniswapV3 is a Uniswap V3 style factory (PoolCreated).
	KindUniswapV3 Kind = "uniswap_v3"
)

const (
	// PairCreatedEvent is emitted by Uniswap V2 style factories on every new pair.
	PairCreatedEvent = "PairCreated(address,address,address,uint256)"

	// PoolCreatedEvent is emitted by Uniswap V3 style factories on every new pool.
	PoolCreatedEvent = "PoolCreated(address,address,uint24,int24,address)"

	// DefaultUniswapV2Fee is the swap fee of a V2 pair, in thousandths of a percent (300 = 0.3%).
	DefaultUniswapV2Fee uint32 = 300
)

var (
	PairCreatedSignature = crypto.Keccak256Hash([]byte(PairCreatedEvent))
	PoolCreatedSignature = crypto.Keccak256Hash([]byte(PoolCreatedEvent))
)

// AllKinds returns every supported kind in a stable order.
func AllKinds() []Kind {
	return []Kind{KindUniswapV2, KindUniswapV3}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("unknown factory kind: %s (must be one of: uniswap_v2, uniswap_v3)", s)
	}
	return k, nil
}

// ParseKinds parses a list of kind names, dropping duplicates.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	seen := make(map[Kind]struct{}, len(names))

	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kinds = append(kinds, k)
	}

	return kinds, nil
}

// String returns the string representation of Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind value is one of the supported kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindUniswapV2, KindUniswapV3:
		return true
	default:
		return false
	}
}

// DiscoverySignature returns the topic0 emitted by a factory of this kind when it creates a pool.
// It returns the zero hash for an invalid kind.
func (k Kind) DiscoverySignature() common.Hash {
	switch k {
	case KindUniswapV2:
		return PairCreatedSignature
	case KindUniswapV3:
		return PoolCreatedSignature
	default:
		return common.Hash{}
	}
}

// EventName returns the canonical event string the signature is derived from.
func (k Kind) EventName() string {
	switch k {
	case KindUniswapV2:
		return PairCreatedEvent
	case KindUniswapV3:
		return PoolCreatedEvent
	default:
		return ""
	}
}

// Signatures returns the discovery signatures of the given kinds, in the same order.
func Signatures(kinds []Kind) []common.Hash {
	sigs := make([]common.Hash, 0, len(kinds))
	for _, k := range kinds {
		sigs = append(sigs, k.DiscoverySignature())
	}
	return sigs
}
