package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-asset-shard/asset"
	"github.com/rony4d/go-asset-shard/integration"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Node  NodeConfig
	Asset AssetConfig
	DB    DBConfig
}

type NodeConfig struct {
	DataDir string
	Name    string
	Logging LoggingConfig
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type AssetConfig struct {
	NetworkName string
	NetworkID   uint64
	Rules       asset.Rules
}

type DBConfig struct {
	// Path of the epoch checkpoint DB, <datadir>/epochdb unless overridden.
	Path string
	// Preset holds the DB tuning profile selected with --db.preset.
	Preset integration.Preset
}

func defaultConfig() Config {
	defaults := DefaultConfig()
	rules := rulesByName(defaults.Network.ChainName)
	return Config{
		Node: NodeConfig{
			DataDir: resolvePath(defaults.Node.DataDir),
			Name:    defaults.Node.Name,
			Logging: LoggingConfig{
				Verbosity: defaults.Logging.Verbosity,
				Format:    defaults.Logging.Format,
				Color:     defaults.Logging.Color,
			},
		},
		Asset: AssetConfig{
			NetworkName: rules.Name,
			NetworkID:   rules.NetworkID,
			Rules:       rules,
		},
		DB: DBConfig{
			Preset: integration.DefaultPreset(),
		},
	}
}

func rulesByName(name string) asset.Rules {
	switch name {
	case "test":
		return asset.TestNetRules()
	case "fake":
		return asset.FakeNetRules()
	default:
		return asset.MainNetRules()
	}
}

// MakeAllConfigs merges defaults with CLI flag overrides and ensures the
// data directory exists.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()
	if ctx.GlobalIsSet("db.preset") {
		preset, err := integration.GetPresetByName(ctx.GlobalString("db.preset"))
		if err != nil {
			return Config{}, err
		}
		integration.ApplyPreset(&cfg.DB.Preset, preset)
	}
	applyCLIOverrides(ctx, &cfg)

	if cfg.DB.Path == "" {
		cfg.DB.Path = filepath.Join(cfg.Node.DataDir, "epochdb")
	}
	if err := ensureDir(cfg.Node.DataDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("datadir") {
		cfg.Node.DataDir = resolvePath(ctx.GlobalString("datadir"))
	}
	if ctx.GlobalIsSet("identity") {
		cfg.Node.Name = ctx.GlobalString("identity")
	}
	if ctx.GlobalIsSet("datadir.epochdb") {
		cfg.DB.Path = resolvePath(ctx.GlobalString("datadir.epochdb"))
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Node.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Node.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Node.Logging.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Node.Logging.SentryDSN = ctx.GlobalString("sentry.dsn")
	}

	if ctx.GlobalBool("testnet") {
		cfg.Asset.Rules = asset.TestNetRules()
	}
	if ctx.GlobalBool("fakenet") {
		cfg.Asset.Rules = asset.FakeNetRules()
	}
	cfg.Asset.NetworkName = cfg.Asset.Rules.Name
	cfg.Asset.NetworkID = cfg.Asset.Rules.NetworkID
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
