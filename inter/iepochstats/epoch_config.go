package iepochstats

import (
	"crypto/sha256"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-asset-shard/asset"
	"github.com/rony4d/go-asset-shard/inter"
)

// EpochConfig is the sealed production schedule of one epoch.
// It is immutable once built: every node derives the same schedule
// from the same validator set and rules.
type EpochConfig struct {
	Epoch       idx.Epoch
	FirstHeight idx.Block

	Validators *pos.Validators

	// BlockProducers is the round-robin order of settlement-block production.
	BlockProducers []idx.ValidatorID

	// ChunkProducers holds one production order per shard.
	// Every shard's schedule is non-empty.
	ChunkProducers [][]idx.ValidatorID

	Version inter.ProtocolVersion
	Rules   asset.Rules
}

// NewEpochConfig derives the production schedules of an epoch from its
// validator set and network rules.
func NewEpochConfig(epoch idx.Epoch, firstHeight idx.Block, version inter.ProtocolVersion, rules asset.Rules, validators *pos.Validators) *EpochConfig {
	blockProducers := validators.SortedIDs()
	shards := int(rules.Shards.Count)
	chunkProducers := make([][]idx.ValidatorID, shards)
	for s := 0; s < shards; s++ {
		for i := s; i < len(blockProducers); i += shards {
			chunkProducers[s] = append(chunkProducers[s], blockProducers[i])
		}
		// a shard without producers of its own falls back to the block schedule
		if len(chunkProducers[s]) == 0 {
			chunkProducers[s] = append(chunkProducers[s], blockProducers...)
		}
	}
	return &EpochConfig{
		Epoch:          epoch,
		FirstHeight:    firstHeight,
		Validators:     validators,
		BlockProducers: blockProducers,
		ChunkProducers: chunkProducers,
		Version:        version,
		Rules:          rules,
	}
}

// BlockProducer returns the validator scheduled to produce the block
// at the given height.
func (ec *EpochConfig) BlockProducer(height idx.Block) idx.ValidatorID {
	return ec.BlockProducers[uint64(height)%uint64(len(ec.BlockProducers))]
}

// ChunkProducer returns the validator scheduled to produce the shard's chunk
// at the given height.
func (ec *EpochConfig) ChunkProducer(height idx.Block, shard inter.ShardID) idx.ValidatorID {
	producers := ec.ChunkProducers[shard]
	return producers[uint64(height)%uint64(len(producers))]
}

// LastHeight returns the height of the last block the epoch may contain.
func (ec *EpochConfig) LastHeight() idx.Block {
	return ec.FirstHeight + ec.Rules.Epochs.MaxEpochBlocks - 1
}

// Hash calculates the hash of the epoch config.
func (ec EpochConfig) Hash() hash.Hash {
	hasher := sha256.New()
	err := rlp.Encode(hasher, &ec)
	if err != nil {
		panic("can't hash: " + err.Error())
	}
	return hash.BytesToHash(hasher.Sum(nil))
}

// Copy returns a deep copy of the epoch config.
// The validator set is immutable and stays shared.
func (ec EpochConfig) Copy() EpochConfig {
	cp := ec
	cp.BlockProducers = make([]idx.ValidatorID, len(ec.BlockProducers))
	copy(cp.BlockProducers, ec.BlockProducers)
	cp.ChunkProducers = make([][]idx.ValidatorID, len(ec.ChunkProducers))
	for s := range ec.ChunkProducers {
		cp.ChunkProducers[s] = make([]idx.ValidatorID, len(ec.ChunkProducers[s]))
		copy(cp.ChunkProducers[s], ec.ChunkProducers[s])
	}
	cp.Rules = ec.Rules.Copy()
	return cp
}
