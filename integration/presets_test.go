package integration

import (
	"testing"
)

// The tests verify that the epoch DB presets behave correctly:
// - Each preset produces a distinct, internally consistent profile
// - Presets override default values as expected
// - Helper functions (GetPresetByName, ApplyPreset) work correctly
// - Invalid inputs are handled gracefully
//
// These tests ensure that operators can reliably use presets without
// unexpected side effects or configuration conflicts.

// TestDefaultPreset_hasReasonableDefaults verifies that DefaultPreset returns
// a profile with sensible baseline values. This test acts as a regression
// guard: if defaults change, we want to know immediately.
func TestDefaultPreset_hasReasonableDefaults(t *testing.T) {
	cfg := DefaultPreset()

	// Verify preset name is set correctly for logging/config dumps
	if cfg.Name != "default" {
		t.Fatalf("Name = %q, want 'default'", cfg.Name)
	}

	// Cache should be non-zero and reasonable (not too small, not excessive)
	if cfg.DB.CacheMB <= 0 || cfg.DB.CacheMB > 10000 {
		t.Fatalf("CacheMB = %d, want value between 1 and 10000", cfg.DB.CacheMB)
	}

	// File handle budget must be positive so pebble can open its sstables
	if cfg.DB.MaxOpenFiles <= 0 {
		t.Fatalf("MaxOpenFiles = %d, want positive value", cfg.DB.MaxOpenFiles)
	}

	// Durability defaults: checkpoints must survive crashes out of the box
	if !cfg.DB.SyncWrites {
		t.Fatal("SyncWrites should be true by default for durability")
	}
	if cfg.DB.DisableWAL {
		t.Fatal("DisableWAL should be false by default for crash recovery")
	}
}

// TestLitePreset_overridesDefaults verifies that LitePreset produces a
// profile distinct from DefaultPreset, with values optimized for
// development environments.
func TestLitePreset_overridesDefaults(t *testing.T) {
	defaultCfg := DefaultPreset()
	liteCfg := LitePreset()

	// Lite preset should have a different name
	if liteCfg.Name != "lite" {
		t.Fatalf("Name = %q, want 'lite'", liteCfg.Name)
	}

	// Cache should be smaller than default (optimized for low-resource envs)
	if liteCfg.DB.CacheMB >= defaultCfg.DB.CacheMB {
		t.Fatalf("Lite CacheMB (%d) should be smaller than default (%d)", liteCfg.DB.CacheMB, defaultCfg.DB.CacheMB)
	}

	// Lite preset trades durability for speed: no fsync, no WAL
	if liteCfg.DB.SyncWrites {
		t.Fatal("SyncWrites should be false for lite preset (dev convenience)")
	}
	if !liteCfg.DB.DisableWAL {
		t.Fatal("DisableWAL should be true for lite preset")
	}
}

// TestFullPreset_overridesDefaults verifies that FullPreset produces a
// production-ready profile with larger caches and durable writes.
func TestFullPreset_overridesDefaults(t *testing.T) {
	defaultCfg := DefaultPreset()
	fullCfg := FullPreset()

	// Full preset should have a different name
	if fullCfg.Name != "full" {
		t.Fatalf("Name = %q, want 'full'", fullCfg.Name)
	}

	// Cache should be larger than default (optimized for performance)
	if fullCfg.DB.CacheMB <= defaultCfg.DB.CacheMB {
		t.Fatalf("Full CacheMB (%d) should be larger than default (%d)", fullCfg.DB.CacheMB, defaultCfg.DB.CacheMB)
	}

	// Durability must stay on for validator nodes
	if !fullCfg.DB.SyncWrites {
		t.Fatal("SyncWrites should be true for full preset")
	}
	if fullCfg.DB.DisableWAL {
		t.Fatal("DisableWAL should be false for full preset")
	}
}

// TestArchivePreset_overridesDefaults verifies that ArchivePreset produces
// a profile optimized for historical queries with maximum caching.
func TestArchivePreset_overridesDefaults(t *testing.T) {
	defaultCfg := DefaultPreset()
	archiveCfg := ArchivePreset()

	// Archive preset should have a different name
	if archiveCfg.Name != "archive" {
		t.Fatalf("Name = %q, want 'archive'", archiveCfg.Name)
	}

	// Cache should be largest of all presets (optimized for read-heavy workloads)
	if archiveCfg.DB.CacheMB <= defaultCfg.DB.CacheMB {
		t.Fatalf("Archive CacheMB (%d) should be larger than default (%d)", archiveCfg.DB.CacheMB, defaultCfg.DB.CacheMB)
	}

	// Read-heavy workloads need a generous file handle budget
	if archiveCfg.DB.MaxOpenFiles <= defaultCfg.DB.MaxOpenFiles {
		t.Fatalf("Archive MaxOpenFiles (%d) should be larger than default (%d)", archiveCfg.DB.MaxOpenFiles, defaultCfg.DB.MaxOpenFiles)
	}

	// Durability should remain strong even for archival nodes
	if !archiveCfg.DB.SyncWrites {
		t.Fatal("SyncWrites should be true for archive preset")
	}
	if archiveCfg.DB.DisableWAL {
		t.Fatal("DisableWAL should be false for archive preset")
	}
}

// TestPresets_haveDistinctValues verifies that all presets produce unique
// profiles. This ensures presets are actually useful and not redundant.
func TestPresets_haveDistinctValues(t *testing.T) {
	lite := LitePreset()
	full := FullPreset()
	archive := ArchivePreset()

	// Each preset should have a unique name
	names := map[string]bool{
		lite.Name:    true,
		full.Name:    true,
		archive.Name: true,
	}
	if len(names) != 3 {
		t.Fatalf("Presets should have unique names, got: %v", names)
	}

	// Cache sizes should be ordered: lite < full < archive
	if lite.DB.CacheMB >= full.DB.CacheMB {
		t.Fatalf("Lite cache (%d) should be smaller than full (%d)", lite.DB.CacheMB, full.DB.CacheMB)
	}
	if full.DB.CacheMB >= archive.DB.CacheMB {
		t.Fatalf("Full cache (%d) should be smaller than archive (%d)", full.DB.CacheMB, archive.DB.CacheMB)
	}

	// Only the lite preset gives up the WAL
	if !lite.DB.DisableWAL {
		t.Fatal("Lite preset should disable the WAL")
	}
	if full.DB.DisableWAL || archive.DB.DisableWAL {
		t.Fatal("Full and archive presets should keep the WAL")
	}
}

// TestGetPresetByName_validPresets verifies that GetPresetByName correctly
// returns the expected preset for all valid preset names.
func TestGetPresetByName_validPresets(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
	}{
		{"lite", "lite"},
		{"full", "full"},
		{"archive", "archive"},
		{"default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := GetPresetByName(tt.name)
			if err != nil {
				t.Fatalf("GetPresetByName(%q) returned error: %v", tt.name, err)
			}
			// Verify the returned preset has the correct name
			if cfg.Name != tt.wantName {
				t.Fatalf("Preset name = %q, want %q", cfg.Name, tt.wantName)
			}
			// Verify the preset has reasonable values (non-zero cache)
			if cfg.DB.CacheMB <= 0 {
				t.Fatalf("Preset %q has invalid CacheMB: %d", tt.name, cfg.DB.CacheMB)
			}
		})
	}
}

// TestGetPresetByName_invalidPreset verifies that GetPresetByName returns
// an error for unrecognized preset names.
func TestGetPresetByName_invalidPreset(t *testing.T) {
	invalidNames := []string{"unknown", "invalid", "", "LITE", "Full"}

	for _, name := range invalidNames {
		t.Run(name, func(t *testing.T) {
			cfg, err := GetPresetByName(name)
			if err == nil {
				t.Fatalf("GetPresetByName(%q) should return error, got config: %+v", name, cfg)
			}
			// Error message should be helpful and mention valid options
			if err.Error() == "" {
				t.Fatal("Error message should not be empty")
			}
		})
	}
}

// TestApplyPreset_overridesTarget verifies that ApplyPreset correctly merges
// preset values into an existing profile, overriding only the fields
// that are set in the preset.
func TestApplyPreset_overridesTarget(t *testing.T) {
	// Start with a custom target profile
	target := Preset{
		Name: "custom",
	}
	target.DB.CacheMB = 16
	target.DB.MaxOpenFiles = 64
	target.DB.SyncWrites = false
	target.DB.DisableWAL = true

	// Apply the full preset
	preset := FullPreset()
	ApplyPreset(&target, preset)

	// Verify all preset fields were applied
	if target.Name != preset.Name {
		t.Fatalf("Name not overridden: got %q, want %q", target.Name, preset.Name)
	}
	if target.DB.CacheMB != preset.DB.CacheMB {
		t.Fatalf("CacheMB not overridden: got %d, want %d", target.DB.CacheMB, preset.DB.CacheMB)
	}
	if target.DB.MaxOpenFiles != preset.DB.MaxOpenFiles {
		t.Fatalf("MaxOpenFiles not overridden: got %d, want %d", target.DB.MaxOpenFiles, preset.DB.MaxOpenFiles)
	}
	if target.DB.SyncWrites != preset.DB.SyncWrites {
		t.Fatalf("SyncWrites not overridden: got %v, want %v", target.DB.SyncWrites, preset.DB.SyncWrites)
	}
	if target.DB.DisableWAL != preset.DB.DisableWAL {
		t.Fatalf("DisableWAL not overridden: got %v, want %v", target.DB.DisableWAL, preset.DB.DisableWAL)
	}
}

// TestApplyPreset_partialOverride verifies that ApplyPreset handles partial
// presets correctly (presets with some zero values should only override
// non-zero fields).
func TestApplyPreset_partialOverride(t *testing.T) {
	target := DefaultPreset()
	originalName := target.Name
	originalFiles := target.DB.MaxOpenFiles

	// Create a partial preset that only sets the cache size
	partial := Preset{}
	partial.DB.CacheMB = 2048
	// Name is empty, so it shouldn't override
	// MaxOpenFiles is zero, so it shouldn't override either

	ApplyPreset(&target, partial)

	// CacheMB should be overridden
	if target.DB.CacheMB != 2048 {
		t.Fatalf("CacheMB should be overridden to 2048, got %d", target.DB.CacheMB)
	}

	// Name should remain unchanged (empty string in preset means don't override)
	if target.Name != originalName {
		t.Fatalf("Name should remain %q when preset has empty name, got %q", originalName, target.Name)
	}

	// MaxOpenFiles should remain unchanged (zero in preset means don't override)
	if target.DB.MaxOpenFiles != originalFiles {
		t.Fatalf("MaxOpenFiles should remain %d, got %d", originalFiles, target.DB.MaxOpenFiles)
	}
}

// TestPresets_areIdempotent verifies that calling preset functions multiple
// times returns consistent results. This ensures presets don't have hidden
// state or side effects.
func TestPresets_areIdempotent(t *testing.T) {
	// Call each preset function twice
	lite1 := LitePreset()
	lite2 := LitePreset()

	full1 := FullPreset()
	full2 := FullPreset()

	archive1 := ArchivePreset()
	archive2 := ArchivePreset()

	// Compare results: they should be identical
	if lite1 != lite2 {
		t.Fatal("LitePreset() should return identical results on multiple calls")
	}
	if full1 != full2 {
		t.Fatal("FullPreset() should return identical results on multiple calls")
	}
	if archive1 != archive2 {
		t.Fatal("ArchivePreset() should return identical results on multiple calls")
	}
}
