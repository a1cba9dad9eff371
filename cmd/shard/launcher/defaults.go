package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before CLI flags override them.
type Defaults struct {
	Node    NodeDefaults
	Network NetworkDefaults
	Logging LoggingDefaults
}

// NodeDefaults captures top-level node settings.
type NodeDefaults struct {
	DataDir string // filesystem root of every database the tool opens
	Name    string // node name used in logs
}

// NetworkDefaults names the network preset commands run under.
type NetworkDefaults struct {
	ChainName string // main, test or fake
}

// LoggingDefaults controls log verbosity and format.
type LoggingDefaults struct {
	Verbosity int    // 0=fatal up to 5=trace
	Format    string // text or json
	Color     bool
}

// DefaultConfig returns a fully populated Defaults instance.
func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir: "~/.asset-shard",
			Name:    "shard",
		},
		Network: NetworkDefaults{
			ChainName: "main",
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     true,
		},
	}
}
