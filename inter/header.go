package inter

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// Header is a validated block header as produced by the block-processing
// pipeline. Validation of the header happens before it reaches the
// epoch-management layer.
type Header struct {
	Hash       hash.Hash
	ParentHash hash.Hash
	Height     idx.Block
	Creator    idx.ValidatorID

	StateRoot common.Hash
	TxRoot    common.Hash

	// RandomValue is the verifiable random output of the block's producer.
	RandomValue hash.Hash

	// ChunkMask holds one inclusion flag per shard.
	ChunkMask []bool

	PowerProposals    []PowerProposal
	PledgeProposals   []PledgeProposal
	SlashedValidators []SlashedValidator

	TotalSupply *big.Int
	Version     ProtocolVersion
	Time        Timestamp
}
