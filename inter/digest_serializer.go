package inter

import (
	"errors"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-asset-shard/inter/validatorpk"
	"github.com/rony4d/go-asset-shard/utils/cser"
)

var (
	ErrSerMalformedDigest = errors.New("serialization of malformed digest")
)

const (
	// limits for decoded list sizes
	maxShardCount    = 4096
	maxProposalCount = ProtocolMaxMsgSize / 64
	maxPubkeySize    = 256
)

// MarshalCSER writes the digest in the canonical format.
func (d *BlockDigest) MarshalCSER(w *cser.Writer) error {
	if d.TotalSupply == nil || d.TotalSupply.Sign() < 0 {
		return ErrSerMalformedDigest
	}
	if d.LastFinalizedHeight > d.Height {
		return ErrSerMalformedDigest
	}
	w.U64(uint64(d.Height))
	w.FixedBytes(d.Hash.Bytes())
	w.FixedBytes(d.ParentHash.Bytes())
	w.FixedBytes(d.RandomValue.Bytes())
	// finality pointer is stored as a distance, which is varint friendly
	w.U64(uint64(d.Height - d.LastFinalizedHeight))
	w.FixedBytes(d.LastFinalizedHash.Bytes())
	w.U64(uint64(d.Time))
	w.U32(uint32(d.Version))
	w.BigInt(d.TotalSupply)

	w.U32(uint32(len(d.ChunkMask)))
	for _, included := range d.ChunkMask {
		w.Bool(included)
	}

	w.U32(uint32(len(d.PowerProposals)))
	for _, p := range d.PowerProposals {
		if err := marshalProposalCSER(w, p.Account, p.PubKey, p.Power); err != nil {
			return err
		}
	}
	w.U32(uint32(len(d.PledgeProposals)))
	for _, p := range d.PledgeProposals {
		if err := marshalProposalCSER(w, p.Account, p.PubKey, p.Pledge); err != nil {
			return err
		}
	}
	w.U32(uint32(len(d.SlashedValidators)))
	for _, s := range d.SlashedValidators {
		w.FixedBytes(s.Account.Bytes())
		w.Bool(s.IsDoubleSign)
	}
	return nil
}

// UnmarshalCSER reads a digest written by MarshalCSER.
func (d *BlockDigest) UnmarshalCSER(r *cser.Reader) error {
	height := r.U64()
	r.FixedBytes(d.Hash[:])
	r.FixedBytes(d.ParentHash[:])
	r.FixedBytes(d.RandomValue[:])
	finalizedDistance := r.U64()
	if finalizedDistance > height {
		return cser.ErrMalformedEncoding
	}
	r.FixedBytes(d.LastFinalizedHash[:])
	creationTime := r.U64()
	version := r.U32()
	supply := r.BigInt()

	maskLen := r.U32()
	if maskLen > maxShardCount {
		return cser.ErrTooLargeAlloc
	}
	mask := make([]bool, maskLen)
	for i := uint32(0); i < maskLen; i++ {
		mask[i] = r.Bool()
	}

	powerNum := r.U32()
	if powerNum > maxProposalCount {
		return cser.ErrTooLargeAlloc
	}
	powers := make([]PowerProposal, 0, powerNum)
	for i := uint32(0); i < powerNum; i++ {
		acc, pk, amount, err := unmarshalProposalCSER(r)
		if err != nil {
			return err
		}
		powers = append(powers, PowerProposal{Account: acc, PubKey: pk, Power: amount})
	}

	pledgeNum := r.U32()
	if pledgeNum > maxProposalCount {
		return cser.ErrTooLargeAlloc
	}
	pledges := make([]PledgeProposal, 0, pledgeNum)
	for i := uint32(0); i < pledgeNum; i++ {
		acc, pk, amount, err := unmarshalProposalCSER(r)
		if err != nil {
			return err
		}
		pledges = append(pledges, PledgeProposal{Account: acc, PubKey: pk, Pledge: amount})
	}

	slashedNum := r.U32()
	if slashedNum > maxProposalCount {
		return cser.ErrTooLargeAlloc
	}
	slashed := make([]SlashedValidator, 0, slashedNum)
	for i := uint32(0); i < slashedNum; i++ {
		s := SlashedValidator{}
		r.FixedBytes(s.Account[:])
		s.IsDoubleSign = r.Bool()
		slashed = append(slashed, s)
	}

	d.Height = idx.Block(height)
	d.LastFinalizedHeight = idx.Block(height - finalizedDistance)
	d.Time = Timestamp(creationTime)
	d.Version = ProtocolVersion(version)
	d.TotalSupply = supply
	d.ChunkMask = mask
	d.PowerProposals = powers
	d.PledgeProposals = pledges
	d.SlashedValidators = slashed
	return nil
}

func marshalProposalCSER(w *cser.Writer, acc common.Address, pk validatorpk.PubKey, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrSerMalformedDigest
	}
	w.FixedBytes(acc.Bytes())
	w.SliceBytes(pk.Bytes())
	w.BigInt(amount)
	return nil
}

func unmarshalProposalCSER(r *cser.Reader) (acc common.Address, pk validatorpk.PubKey, amount *big.Int, err error) {
	r.FixedBytes(acc[:])
	pkBytes := r.SliceBytes(maxPubkeySize)
	pk, err = validatorpk.FromBytes(pkBytes)
	if err != nil {
		return
	}
	amount = r.BigInt()
	return
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d *BlockDigest) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(d.MarshalCSER)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *BlockDigest) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, d.UnmarshalCSER)
}
