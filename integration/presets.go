package integration

import (
	"fmt"

	"github.com/rony4d/go-asset-shard/epochdb"
)

// Package integration provides configuration presets for assembling the
// aggregator runtime. Presets bundle the epoch DB tuning knobs (cache size,
// write durability, file handle budget) into named profiles (Lite, Full,
// Archive) so operators can pick a profile matching their workload without
// tweaking individual settings.
//
// Usage:
//   preset := integration.LitePreset()    // for development
//   preset := integration.FullPreset()    // for production validators
//   preset := integration.ArchivePreset() // for explorers keeping every epoch
//
// Each preset returns a Preset struct that the launcher merges into its main
// config during startup.

// Preset captures the tunable parameters that vary across profiles. It
// intentionally excludes settings that are always the same (like the network
// rules or the DB path) so presets focus on performance and resource
// trade-offs.
type Preset struct {
	Name string         // human-readable identifier (e.g., "lite", "full")
	DB   epochdb.Config // epoch checkpoint DB tuning
}

func DefaultPreset() Preset {

	return Preset{
		Name: "default",
		DB:   epochdb.DefaultConfig(), // balanced cache, durable writes
	}
}

// LitePreset returns a lightweight profile optimized for development, testing
// and low-resource environments. It trades checkpoint durability for faster
// writes and a small memory footprint.
//
// Use cases:
//   - Local development on laptops
//   - CI pipelines with disposable data directories
//   - Quick checkpoint experiments with throwaway nodes
//
// Trade-offs:
//   - No WAL and no fsync: a crash can lose checkpoints saved since the last flush
//   - The small cache slows inspection of long epoch histories
func LitePreset() Preset {
	cfg := DefaultPreset()     // start with balanced defaults
	cfg.Name = "lite"          // set preset identifier for logs and config dumps
	cfg.DB.CacheMB = 8         // reduce the cache so the tool fits in constrained environments
	cfg.DB.MaxOpenFiles = 128  // stay well below default ulimits in CI containers
	cfg.DB.SyncWrites = false  // skip the fsync on every saved checkpoint
	cfg.DB.DisableWAL = true   // skip the write-ahead log entirely
	return cfg
}

// FullPreset returns a production-ready profile for validator nodes. Writes
// stay durable and the cache is large enough to keep a whole epoch history
// hot.
//
// Use cases:
//   - Mainnet validator nodes
//   - Nodes serving checkpoint queries to other services
//
// Trade-offs:
//   - The larger cache requires more RAM
//   - Synced writes cost latency on every saved checkpoint
func FullPreset() Preset {
	cfg := DefaultPreset()
	cfg.Name = "full"
	cfg.DB.CacheMB = 256       // large enough to keep hot checkpoints in memory
	cfg.DB.MaxOpenFiles = 1024 // room for a long-lived DB with many sstables
	cfg.DB.SyncWrites = true   // never lose a saved checkpoint to a crash
	cfg.DB.DisableWAL = false  // keep the WAL for crash recovery
	return cfg
}

// ArchivePreset returns a profile for explorers and analytics platforms that
// retain every epoch checkpoint and read them often. It maximizes caching
// while keeping writes durable.
//
// Use cases:
//   - Epoch explorers
//   - Analytics over long validator performance histories
//
// Trade-offs:
//   - The cache requires substantial RAM
//   - Disk usage grows with every retained epoch
func ArchivePreset() Preset {
	cfg := DefaultPreset()
	cfg.Name = "archive"
	cfg.DB.CacheMB = 1024      // keep a deep epoch history in memory for fast lookups
	cfg.DB.MaxOpenFiles = 4096 // read-heavy workloads touch many sstables at once
	cfg.DB.SyncWrites = true   // archival data must survive crashes
	cfg.DB.DisableWAL = false  // maintain crash recovery even for archival nodes
	return cfg
}

// GetPresetByName looks up a preset by its string identifier and returns the
// corresponding Preset. Returns an error if the name is unrecognized.
// This helper enables CLI flags like --db.preset=full to select profiles
// dynamically.
//
// Example:
//
//	preset, err := integration.GetPresetByName("lite")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetPresetByName(name string) (Preset, error) {
	switch name {
	case "lite":
		return LitePreset(), nil
	case "full":
		return FullPreset(), nil
	case "archive":
		return ArchivePreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return Preset{}, fmt.Errorf("unknown preset: %q (valid: lite, full, archive, default)", name)
	}
}

// ApplyPreset merges a preset configuration into an existing config struct.
// Fields set in the preset override the corresponding values in the target.
// This allows presets to be applied incrementally on top of CLI overrides
// without clobbering unrelated settings.
//
// Example:
//
//	cfg := integration.DefaultPreset()
//	preset := integration.FullPreset()
//	integration.ApplyPreset(&cfg, preset)
func ApplyPreset(target *Preset, preset Preset) {
	if preset.DB.CacheMB > 0 {
		target.DB.CacheMB = preset.DB.CacheMB
	}
	if preset.DB.MaxOpenFiles > 0 {
		target.DB.MaxOpenFiles = preset.DB.MaxOpenFiles
	}
	// boolean knobs are always applied (no zero-value check needed)
	target.DB.SyncWrites = preset.DB.SyncWrites
	target.DB.DisableWAL = preset.DB.DisableWAL
	if preset.Name != "" {
		target.Name = preset.Name
	}
}
