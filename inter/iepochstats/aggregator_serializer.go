package iepochstats

import (
	"bytes"
	"errors"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-asset-shard/inter"
	"github.com/rony4d/go-asset-shard/inter/validatorpk"
	"github.com/rony4d/go-asset-shard/utils/cser"
)

var (
	ErrSerMalformedAggregator = errors.New("serialization of malformed aggregator")
)

const (
	// limits for decoded map sizes
	maxShardCount     = 4096
	maxTrackerEntries = inter.ProtocolMaxMsgSize / 16
	maxProposalCount  = inter.ProtocolMaxMsgSize / 64
	maxPubkeySize     = 256
)

// MarshalCSER writes the aggregator in the canonical format: fixed field
// order with map entries sorted by key, so equal aggregators always
// serialize into equal bytes.
func (a *Aggregator) MarshalCSER(w *cser.Writer) error {
	w.U32(uint32(a.Epoch))
	w.FixedBytes(a.LastBlockHash.Bytes())

	writeTrackerCSER(w, a.BlockTracker)

	shards := make([]inter.ShardID, 0, len(a.ShardTracker))
	for shard := range a.ShardTracker {
		shards = append(shards, shard)
	}
	sort.Slice(shards, func(i, j int) bool { return shards[i] < shards[j] })
	w.U32(uint32(len(shards)))
	for _, shard := range shards {
		w.U32(uint32(shard))
		writeTrackerCSER(w, a.ShardTracker[shard])
	}

	ids := make([]idx.ValidatorID, 0, len(a.VersionTracker))
	for id := range a.VersionTracker {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	w.U32(uint32(len(ids)))
	for _, id := range ids {
		w.U32(uint32(id))
		w.U32(uint32(a.VersionTracker[id]))
	}

	if err := marshalPowerProposalsCSER(w, a.PowerProposals); err != nil {
		return err
	}
	return marshalPledgeProposalsCSER(w, a.PledgeProposals)
}

// UnmarshalCSER reads an aggregator written by MarshalCSER.
// Non-ascending map keys are rejected as non-canonical.
func (a *Aggregator) UnmarshalCSER(r *cser.Reader) error {
	epoch := idx.Epoch(r.U32())
	lastBlockHash := hash.Hash{}
	r.FixedBytes(lastBlockHash[:])

	blockTracker, err := readTrackerCSER(r)
	if err != nil {
		return err
	}

	shardNum := r.U32()
	if shardNum > maxShardCount {
		return cser.ErrTooLargeAlloc
	}
	shardTracker := make(map[inter.ShardID]map[idx.ValidatorID]ValidatorStats, shardNum)
	prevShard := inter.ShardID(0)
	for i := uint32(0); i < shardNum; i++ {
		shard := inter.ShardID(r.U32())
		if i > 0 && shard <= prevShard {
			return cser.ErrNonCanonicalEncoding
		}
		prevShard = shard
		tracker, err := readTrackerCSER(r)
		if err != nil {
			return err
		}
		shardTracker[shard] = tracker
	}

	versionNum := r.U32()
	if versionNum > maxTrackerEntries {
		return cser.ErrTooLargeAlloc
	}
	versionTracker := make(map[idx.ValidatorID]inter.ProtocolVersion, versionNum)
	prevID := idx.ValidatorID(0)
	for i := uint32(0); i < versionNum; i++ {
		id := idx.ValidatorID(r.U32())
		if i > 0 && id <= prevID {
			return cser.ErrNonCanonicalEncoding
		}
		prevID = id
		versionTracker[id] = inter.ProtocolVersion(r.U32())
	}

	powerNum := r.U32()
	if powerNum > maxProposalCount {
		return cser.ErrTooLargeAlloc
	}
	powerProposals := make(map[common.Address]inter.PowerProposal, powerNum)
	prevAcc := common.Address{}
	for i := uint32(0); i < powerNum; i++ {
		acc := common.Address{}
		r.FixedBytes(acc[:])
		if i > 0 && bytes.Compare(acc[:], prevAcc[:]) <= 0 {
			return cser.ErrNonCanonicalEncoding
		}
		prevAcc = acc
		pk, err := validatorpk.FromBytes(r.SliceBytes(maxPubkeySize))
		if err != nil {
			return err
		}
		powerProposals[acc] = inter.PowerProposal{Account: acc, PubKey: pk, Power: r.BigInt()}
	}

	pledgeNum := r.U32()
	if pledgeNum > maxProposalCount {
		return cser.ErrTooLargeAlloc
	}
	pledgeProposals := make(map[common.Address]inter.PledgeProposal, pledgeNum)
	prevAcc = common.Address{}
	for i := uint32(0); i < pledgeNum; i++ {
		acc := common.Address{}
		r.FixedBytes(acc[:])
		if i > 0 && bytes.Compare(acc[:], prevAcc[:]) <= 0 {
			return cser.ErrNonCanonicalEncoding
		}
		prevAcc = acc
		pk, err := validatorpk.FromBytes(r.SliceBytes(maxPubkeySize))
		if err != nil {
			return err
		}
		pledgeProposals[acc] = inter.PledgeProposal{Account: acc, PubKey: pk, Pledge: r.BigInt()}
	}

	a.Epoch = epoch
	a.LastBlockHash = lastBlockHash
	a.BlockTracker = blockTracker
	a.ShardTracker = shardTracker
	a.VersionTracker = versionTracker
	a.PowerProposals = powerProposals
	a.PledgeProposals = pledgeProposals
	return nil
}

func writeTrackerCSER(w *cser.Writer, tracker map[idx.ValidatorID]ValidatorStats) {
	ids := make([]idx.ValidatorID, 0, len(tracker))
	for id := range tracker {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	w.U32(uint32(len(ids)))
	for _, id := range ids {
		stats := tracker[id]
		w.U32(uint32(id))
		w.U64(stats.Produced)
		w.U64(stats.Expected)
	}
}

func readTrackerCSER(r *cser.Reader) (map[idx.ValidatorID]ValidatorStats, error) {
	num := r.U32()
	if num > maxTrackerEntries {
		return nil, cser.ErrTooLargeAlloc
	}
	tracker := make(map[idx.ValidatorID]ValidatorStats, num)
	prev := idx.ValidatorID(0)
	for i := uint32(0); i < num; i++ {
		id := idx.ValidatorID(r.U32())
		if i > 0 && id <= prev {
			return nil, cser.ErrNonCanonicalEncoding
		}
		prev = id
		tracker[id] = ValidatorStats{
			Produced: r.U64(),
			Expected: r.U64(),
		}
	}
	return tracker, nil
}

func marshalPowerProposalsCSER(w *cser.Writer, proposals map[common.Address]inter.PowerProposal) error {
	accs := make([]common.Address, 0, len(proposals))
	for acc := range proposals {
		accs = append(accs, acc)
	}
	sortAccounts(accs)
	w.U32(uint32(len(accs)))
	for _, acc := range accs {
		p := proposals[acc]
		if p.Account != acc || p.Power == nil || p.Power.Sign() < 0 {
			return ErrSerMalformedAggregator
		}
		w.FixedBytes(acc.Bytes())
		w.SliceBytes(p.PubKey.Bytes())
		w.BigInt(p.Power)
	}
	return nil
}

func marshalPledgeProposalsCSER(w *cser.Writer, proposals map[common.Address]inter.PledgeProposal) error {
	accs := make([]common.Address, 0, len(proposals))
	for acc := range proposals {
		accs = append(accs, acc)
	}
	sortAccounts(accs)
	w.U32(uint32(len(accs)))
	for _, acc := range accs {
		p := proposals[acc]
		if p.Account != acc || p.Pledge == nil || p.Pledge.Sign() < 0 {
			return ErrSerMalformedAggregator
		}
		w.FixedBytes(acc.Bytes())
		w.SliceBytes(p.PubKey.Bytes())
		w.BigInt(p.Pledge)
	}
	return nil
}

func sortAccounts(accs []common.Address) {
	sort.Slice(accs, func(i, j int) bool {
		return bytes.Compare(accs[i][:], accs[j][:]) < 0
	})
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *Aggregator) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(a.MarshalCSER)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *Aggregator) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, a.UnmarshalCSER)
}
