package inter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-asset-shard/inter/validatorpk"
)

// PowerProposal is a validator's declared voting-power intent
// for future epochs.
type PowerProposal struct {
	Account common.Address
	PubKey  validatorpk.PubKey
	Power   *big.Int
}

// PledgeProposal is a validator's declared stake-bonding intent
// for future epochs.
type PledgeProposal struct {
	Account common.Address
	PubKey  validatorpk.PubKey
	Pledge  *big.Int
}

// SlashedValidator is a slashing record attached to a block.
type SlashedValidator struct {
	Account      common.Address
	IsDoubleSign bool
}

// Copy returns a deep copy of the proposal.
func (p PowerProposal) Copy() PowerProposal {
	cp := p
	cp.PubKey = p.PubKey.Copy()
	if p.Power != nil {
		cp.Power = new(big.Int).Set(p.Power)
	}
	return cp
}

// Copy returns a deep copy of the proposal.
func (p PledgeProposal) Copy() PledgeProposal {
	cp := p
	cp.PubKey = p.PubKey.Copy()
	if p.Pledge != nil {
		cp.Pledge = new(big.Int).Set(p.Pledge)
	}
	return cp
}
