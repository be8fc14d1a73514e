package factory

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrUnknownSignature is returned when a topic does not map to any requested kind.
var ErrUnknownSignature = errors.New("unknown discovery signature")

// UniswapV2Params is the metadata needed to interact with a Uniswap V2 style factory.
type UniswapV2Params struct {
	// Fee is the pair swap fee in thousandths of a percent
	Fee uint32 `json:"fee"`
}

// UniswapV3Params is the metadata needed to interact with a Uniswap V3 style factory.
// V3 pools carry their own fee tier, so the factory needs nothing extra.
type UniswapV3Params struct{}

// Record is a discovered factory. It is a tagged union over Kind: exactly the
// params field matching Kind is set.
// Two records describe the same factory iff their addresses match.
type Record struct {
	Kind          Kind           `json:"kind"`
	Address       common.Address `json:"address"`
	CreationBlock uint64         `json:"creation_block"`

	UniswapV2 *UniswapV2Params `json:"uniswap_v2,omitempty"`
	UniswapV3 *UniswapV3Params `json:"uniswap_v3,omitempty"`
}

// NewRecord builds a fully formed record of the given kind.
func NewRecord(kind Kind, address common.Address, creationBlock uint64) (Record, error) {
	rec := Record{
		Kind:          kind,
		Address:       address,
		CreationBlock: creationBlock,
	}

	switch kind {
	case KindUniswapV2:
		rec.UniswapV2 = &UniswapV2Params{Fee: DefaultUniswapV2Fee}
	case KindUniswapV3:
		rec.UniswapV3 = &UniswapV3Params{}
	default:
		return Record{}, fmt.Errorf("cannot build record for factory kind %q", kind)
	}

	return rec, nil
}

// Validate checks that the params matching Kind are set and no others.
func (r Record) Validate() error {
	switch r.Kind {
	case KindUniswapV2:
		if r.UniswapV2 == nil || r.UniswapV3 != nil {
			return fmt.Errorf("factory %s: uniswap_v2 record must carry only uniswap_v2 params", r.Address.Hex())
		}
	case KindUniswapV3:
		if r.UniswapV3 == nil || r.UniswapV2 != nil {
			return fmt.Errorf("factory %s: uniswap_v3 record must carry only uniswap_v3 params", r.Address.Hex())
		}
	default:
		return fmt.Errorf("factory %s: unknown kind %q", r.Address.Hex(), r.Kind)
	}

	return nil
}

// Fee returns the swap fee for V2 factories, and 0 for kinds that have per-pool fees.
func (r Record) Fee() uint32 {
	if r.UniswapV2 != nil {
		return r.UniswapV2.Fee
	}
	return 0
}

// Decoder maps discovery topics back to the kinds it was built for.
type Decoder struct {
	kinds   []Kind
	byTopic map[common.Hash]Kind
}

// NewDecoder creates a decoder restricted to the given kinds.
// Invalid kinds are ignored.
func NewDecoder(kinds ...Kind) *Decoder {
	d := &Decoder{
		kinds:   make([]Kind, 0, len(kinds)),
		byTopic: make(map[common.Hash]Kind, len(kinds)),
	}

	for _, k := range kinds {
		if !k.IsValid() {
			continue
		}
		if _, exists := d.byTopic[k.DiscoverySignature()]; exists {
			continue
		}
		d.byTopic[k.DiscoverySignature()] = k
		d.kinds = append(d.kinds, k)
	}

	return d
}

// Kinds returns the kinds the decoder accepts.
func (d *Decoder) Kinds() []Kind {
	return append([]Kind(nil), d.kinds...)
}

// Topics returns the discovery signatures the decoder accepts.
func (d *Decoder) Topics() []common.Hash {
	return Signatures(d.kinds)
}

// KindForTopic returns the kind whose discovery signature is topic.
func (d *Decoder) KindForTopic(topic common.Hash) (Kind, bool) {
	k, ok := d.byTopic[topic]
	return k, ok
}

// Decode builds the record for a factory first seen emitting topic at creationBlock.
// It returns an error wrapping ErrUnknownSignature if topic is not one of the decoder's kinds.
func (d *Decoder) Decode(topic common.Hash, address common.Address, creationBlock uint64) (Record, error) {
	kind, ok := d.KindForTopic(topic)
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrUnknownSignature, topic.Hex())
	}

	return NewRecord(kind, address, creationBlock)
}
