// Package iepochstats accumulates per-epoch validator performance counters
// and validator proposals out of finalized block digests.
//
// An Aggregator covers a contiguous half-open range of heights within one
// epoch. Aggregators over adjacent ranges compose: ExtendSuffix appends a
// later range, ExtendPrefix prepends an earlier one. Counter merging is
// associative, so a node may fold any partition of an epoch's blocks and
// arrive at the same totals.
package iepochstats

import (
	"encoding/json"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-asset-shard/inter"
	"github.com/rony4d/go-asset-shard/logger"
)

var log = logger.New("epochstats")

// Aggregator is the accumulated performance and proposal state of one epoch
// over a contiguous range of blocks.
type Aggregator struct {
	// Epoch is the epoch all aggregated blocks belong to.
	Epoch idx.Epoch

	// BlockTracker counts settlement-block production per validator.
	BlockTracker map[idx.ValidatorID]ValidatorStats

	// ShardTracker counts chunk production per shard per validator.
	ShardTracker map[inter.ShardID]map[idx.ValidatorID]ValidatorStats

	// VersionTracker records the first protocol version observed
	// from each block producer.
	VersionTracker map[idx.ValidatorID]inter.ProtocolVersion

	// PowerProposals and PledgeProposals keep the first proposal observed
	// from each account.
	PowerProposals  map[common.Address]inter.PowerProposal
	PledgeProposals map[common.Address]inter.PledgeProposal

	// LastBlockHash is the hash of the newest block the range covers.
	LastBlockHash hash.Hash
}

// NewAggregator makes an empty aggregator for the given epoch,
// ending at the block with the given hash.
func NewAggregator(epoch idx.Epoch, lastBlockHash hash.Hash) *Aggregator {
	return &Aggregator{
		Epoch:           epoch,
		BlockTracker:    map[idx.ValidatorID]ValidatorStats{},
		ShardTracker:    map[inter.ShardID]map[idx.ValidatorID]ValidatorStats{},
		VersionTracker:  map[idx.ValidatorID]inter.ProtocolVersion{},
		PowerProposals:  map[common.Address]inter.PowerProposal{},
		PledgeProposals: map[common.Address]inter.PledgeProposal{},
		LastBlockHash:   lastBlockHash,
	}
}

// UpdateTail accounts the block digest into the aggregator, covering the
// height range (prevHeight, digest.Height]. Heights between prevHeight and
// digest.Height carried no block, so their scheduled producers are charged
// as missed.
func (a *Aggregator) UpdateTail(digest *inter.BlockDigest, cfg *EpochConfig, prevHeight idx.Block) {
	producer := cfg.BlockProducer(digest.Height)

	for h := prevHeight + 1; h <= digest.Height; h++ {
		scheduled := cfg.BlockProducer(h)
		entry := a.BlockTracker[scheduled]
		if h == digest.Height {
			entry.AddProduced(1)
		} else {
			log.Log.WithField("height", h).WithField("validator", scheduled).
				Debug("Missed block")
		}
		entry.AddExpected(1)
		a.BlockTracker[scheduled] = entry
	}

	// the chunk mask reports inclusion at the first height of the range
	chunkHeight := prevHeight + 1
	for s, included := range digest.ChunkMask {
		shard := inter.ShardID(s)
		scheduled := cfg.ChunkProducer(chunkHeight, shard)
		tracker := a.ShardTracker[shard]
		if tracker == nil {
			tracker = map[idx.ValidatorID]ValidatorStats{}
			a.ShardTracker[shard] = tracker
		}
		entry := tracker[scheduled]
		if included {
			entry.AddProduced(1)
		} else {
			log.Log.WithField("height", chunkHeight).WithField("shard", shard).
				WithField("validator", scheduled).
				Debug("Missed chunk")
		}
		entry.AddExpected(1)
		tracker[scheduled] = entry
	}

	if _, ok := a.VersionTracker[producer]; !ok {
		a.VersionTracker[producer] = digest.Version
	}

	for _, p := range digest.PowerProposals {
		if _, ok := a.PowerProposals[p.Account]; !ok {
			a.PowerProposals[p.Account] = p.Copy()
		}
	}
	for _, p := range digest.PledgeProposals {
		if _, ok := a.PledgeProposals[p.Account]; !ok {
			a.PledgeProposals[p.Account] = p.Copy()
		}
	}
}

// ExtendSuffix merges other into a, where other covers the heights directly
// after a's range. On colliding versions and proposals, other's entries win.
// The merged range ends at other's last block.
func (a *Aggregator) ExtendSuffix(other *Aggregator) {
	a.mergeCounters(other)

	for id, v := range other.VersionTracker {
		a.VersionTracker[id] = v
	}
	for acc, p := range other.PowerProposals {
		a.PowerProposals[acc] = p.Copy()
	}
	for acc, p := range other.PledgeProposals {
		a.PledgeProposals[acc] = p.Copy()
	}
	a.LastBlockHash = other.LastBlockHash
}

// ExtendPrefix merges other into a, where other covers the heights directly
// before a's range. On colliding versions and proposals, a's entries win.
// The merged range still ends at a's last block, and other isn't mutated.
func (a *Aggregator) ExtendPrefix(other *Aggregator) {
	a.mergeCounters(other)

	for id, v := range other.VersionTracker {
		if _, ok := a.VersionTracker[id]; !ok {
			a.VersionTracker[id] = v
		}
	}
	for acc, p := range other.PowerProposals {
		if _, ok := a.PowerProposals[acc]; !ok {
			a.PowerProposals[acc] = p.Copy()
		}
	}
	for acc, p := range other.PledgeProposals {
		if _, ok := a.PledgeProposals[acc]; !ok {
			a.PledgeProposals[acc] = p.Copy()
		}
	}
}

func (a *Aggregator) mergeCounters(other *Aggregator) {
	if a.Epoch != other.Epoch {
		panic(fmt.Sprintf("epochs mismatch: %d != %d", a.Epoch, other.Epoch))
	}
	for id, stats := range other.BlockTracker {
		entry := a.BlockTracker[id]
		entry.Add(stats)
		a.BlockTracker[id] = entry
	}
	for shard, tracker := range other.ShardTracker {
		own := a.ShardTracker[shard]
		if own == nil {
			own = map[idx.ValidatorID]ValidatorStats{}
			a.ShardTracker[shard] = own
		}
		for id, stats := range tracker {
			entry := own[id]
			entry.Add(stats)
			own[id] = entry
		}
	}
}

// Copy returns a deep copy of the aggregator.
func (a *Aggregator) Copy() *Aggregator {
	cp := NewAggregator(a.Epoch, a.LastBlockHash)
	for id, stats := range a.BlockTracker {
		cp.BlockTracker[id] = stats
	}
	for shard, tracker := range a.ShardTracker {
		own := map[idx.ValidatorID]ValidatorStats{}
		for id, stats := range tracker {
			own[id] = stats
		}
		cp.ShardTracker[shard] = own
	}
	for id, v := range a.VersionTracker {
		cp.VersionTracker[id] = v
	}
	for acc, p := range a.PowerProposals {
		cp.PowerProposals[acc] = p.Copy()
	}
	for acc, p := range a.PledgeProposals {
		cp.PledgeProposals[acc] = p.Copy()
	}
	return cp
}

// Hash calculates the hash of the canonical encoding of the aggregator.
func (a *Aggregator) Hash() hash.Hash {
	b, err := a.MarshalBinary()
	if err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.Of(b)
}

// String returns a JSON representation of the aggregator.
func (a *Aggregator) String() string {
	b, _ := json.Marshal(a)
	return string(b)
}
