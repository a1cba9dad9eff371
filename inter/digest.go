package inter

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
)

// BlockDigest is the compact snapshot of one validated block header that
// the epoch-management layer consumes. A digest owns its data: nothing
// aliases the header it was projected from.
type BlockDigest struct {
	Hash        hash.Hash
	ParentHash  hash.Hash
	Height      idx.Block
	RandomValue hash.Hash

	LastFinalizedHeight idx.Block
	LastFinalizedHash   hash.Hash

	PowerProposals    []PowerProposal
	PledgeProposals   []PledgeProposal
	SlashedValidators []SlashedValidator

	ChunkMask []bool

	TotalSupply *big.Int
	Version     ProtocolVersion
	Time        Timestamp
}

// DigestFromHeader projects a validated header into a BlockDigest.
// The finality pointer is supplied by the caller since the header itself
// does not carry it.
func DigestFromHeader(h *Header, lastFinalizedHeight idx.Block, lastFinalizedHash hash.Hash) *BlockDigest {
	d := &BlockDigest{
		Hash:                h.Hash,
		ParentHash:          h.ParentHash,
		Height:              h.Height,
		RandomValue:         h.RandomValue,
		LastFinalizedHeight: lastFinalizedHeight,
		LastFinalizedHash:   lastFinalizedHash,
		PowerProposals:      make([]PowerProposal, len(h.PowerProposals)),
		PledgeProposals:     make([]PledgeProposal, len(h.PledgeProposals)),
		SlashedValidators:   make([]SlashedValidator, len(h.SlashedValidators)),
		ChunkMask:           make([]bool, len(h.ChunkMask)),
		TotalSupply:         new(big.Int),
		Version:             h.Version,
		Time:                h.Time,
	}
	for i, p := range h.PowerProposals {
		d.PowerProposals[i] = p.Copy()
	}
	for i, p := range h.PledgeProposals {
		d.PledgeProposals[i] = p.Copy()
	}
	copy(d.SlashedValidators, h.SlashedValidators)
	copy(d.ChunkMask, h.ChunkMask)
	if h.TotalSupply != nil {
		d.TotalSupply.Set(h.TotalSupply)
	}
	return d
}

// Copy returns a deep copy of the digest.
func (d *BlockDigest) Copy() *BlockDigest {
	cp := *d
	cp.PowerProposals = make([]PowerProposal, len(d.PowerProposals))
	for i, p := range d.PowerProposals {
		cp.PowerProposals[i] = p.Copy()
	}
	cp.PledgeProposals = make([]PledgeProposal, len(d.PledgeProposals))
	for i, p := range d.PledgeProposals {
		cp.PledgeProposals[i] = p.Copy()
	}
	cp.SlashedValidators = make([]SlashedValidator, len(d.SlashedValidators))
	copy(cp.SlashedValidators, d.SlashedValidators)
	cp.ChunkMask = make([]bool, len(d.ChunkMask))
	copy(cp.ChunkMask, d.ChunkMask)
	if d.TotalSupply != nil {
		cp.TotalSupply = new(big.Int).Set(d.TotalSupply)
	}
	return &cp
}
