// Package asset defines the network rules for the asset-chain networks.
//
// The Rules type is the central configuration structure holding all
// consensus-critical parameters of a network deployment: sharding layout,
// epoch rotation limits, block production limits and economic parameters.
package asset

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/rony4d/go-asset-shard/inter"
)

const (
	// MainNetworkID is the chain ID of the main network.
	MainNetworkID uint64 = 0xa55

	// TestNetworkID is the chain ID of the test network.
	TestNetworkID uint64 = 0xa552

	// FakeNetworkID is the chain ID of fake networks used in testing.
	FakeNetworkID uint64 = 0xa553
)

// RulesRLP is the RLP-serializable version of Rules.
// The Upgrades field is excluded from RLP encoding.
type RulesRLP struct {
	Name      string
	NetworkID uint64

	// Sharding options
	Shards ShardsRules

	// Epochs options
	Epochs EpochsRules

	// Blockchain options
	Blocks BlocksRules

	// Economy options
	Economy EconomyRules

	Upgrades Upgrades `rlp:"-"`
}

// Rules describes the complete configuration of an asset-chain network.
type Rules RulesRLP

// ShardsRules defines how the chain state is split into shards.
type ShardsRules struct {
	// Count is the number of state shards, and so the length of
	// the chunk inclusion mask carried by every block.
	Count uint32
}

// EpochsRules defines the rules of epoch rotation.
// An epoch is sealed when either the block limit or the time limit is reached.
type EpochsRules struct {
	// MaxEpochBlocks is the maximum number of blocks in a single epoch.
	MaxEpochBlocks idx.Block

	// MaxEpochDuration is the maximum time an epoch can last.
	MaxEpochDuration inter.Timestamp
}

// BlocksRules contains rules for block production.
type BlocksRules struct {
	// MaxBlockGas is the technical hard limit for gas per block.
	MaxBlockGas uint64

	// MaxEmptyBlockSkipPeriod is the maximum time producers may skip empty blocks.
	MaxEmptyBlockSkipPeriod inter.Timestamp
}

// EconomyRules contains the economic parameters of the network.
type EconomyRules struct {
	// BlockMissedSlack is the number of blocks a producer may miss
	// before its performance affects rewards.
	BlockMissedSlack idx.Block

	// MinSelfPledge is the minimum self-pledge (in wei) of a validator.
	MinSelfPledge *big.Int
}

// Upgrades tracks which protocol upgrades are enabled.
type Upgrades struct {
	DoubleSignSlashing bool
	DynamicResharding  bool
}

// MainNetRules returns the production network configuration.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Shards:    DefaultShardsRules(),
		Epochs:    DefaultEpochsRules(),
		Economy:   DefaultEconomyRules(),
		Blocks: BlocksRules{
			MaxBlockGas:             20500000,
			MaxEmptyBlockSkipPeriod: inter.Timestamp(1 * time.Minute),
		},
	}
}

// TestNetRules returns the test network configuration.
// The test network mirrors the mainnet parameters for realistic testing.
func TestNetRules() Rules {
	return Rules{
		Name:      "test",
		NetworkID: TestNetworkID,
		Shards:    DefaultShardsRules(),
		Epochs:    DefaultEpochsRules(),
		Economy:   DefaultEconomyRules(),
		Blocks: BlocksRules{
			MaxBlockGas:             20500000,
			MaxEmptyBlockSkipPeriod: inter.Timestamp(1 * time.Minute),
		},
	}
}

// FakeNetRules returns the configuration of local networks used in testing.
// Fake networks rotate epochs much faster and enable all upgrades.
func FakeNetRules() Rules {
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Shards: ShardsRules{
			Count: 2,
		},
		Epochs:  FakeNetEpochsRules(),
		Economy: FakeEconomyRules(),
		Blocks: BlocksRules{
			MaxBlockGas:             20500000,
			MaxEmptyBlockSkipPeriod: inter.Timestamp(3 * time.Second),
		},
		Upgrades: Upgrades{
			DoubleSignSlashing: true,
			DynamicResharding:  true,
		},
	}
}

// DefaultShardsRules returns the mainnet sharding configuration.
func DefaultShardsRules() ShardsRules {
	return ShardsRules{
		Count: 4,
	}
}

// DefaultEpochsRules returns the mainnet epoch configuration.
func DefaultEpochsRules() EpochsRules {
	return EpochsRules{
		MaxEpochBlocks:   43200,
		MaxEpochDuration: inter.Timestamp(4 * time.Hour),
	}
}

// DefaultEconomyRules returns the mainnet economy configuration.
func DefaultEconomyRules() EconomyRules {
	return EconomyRules{
		BlockMissedSlack: 50,
		MinSelfPledge:    new(big.Int).Mul(big.NewInt(500000), big.NewInt(1e18)),
	}
}

// FakeNetEpochsRules returns accelerated epoch rules for fake networks.
func FakeNetEpochsRules() EpochsRules {
	cfg := DefaultEpochsRules()
	cfg.MaxEpochBlocks = 100
	cfg.MaxEpochDuration = inter.Timestamp(10 * time.Minute)
	return cfg
}

// FakeEconomyRules returns the fake network economy configuration.
func FakeEconomyRules() EconomyRules {
	cfg := DefaultEconomyRules()
	cfg.MinSelfPledge = new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	return cfg
}

// Copy returns a deep copy of the rules.
func (r Rules) Copy() Rules {
	cp := r
	cp.Economy.MinSelfPledge = new(big.Int).Set(r.Economy.MinSelfPledge)
	return cp
}

// String returns a JSON representation of the rules.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
