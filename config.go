package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

const (
	// DefaultMaxNodeEntries is the node fanout used when none is configured.
	DefaultMaxNodeEntries = 50
	// DefaultMinNodeEntries is the lower occupancy bound used when none is
	// configured.
	DefaultMinNodeEntries = 20
)

// Config configures an R-tree. The zero value selects the defaults.
//
// Unknown or invalid settings never fail tree construction: out-of-range
// values are replaced by the fallback named at each field, with a traced
// warning.
type Config struct {
	// MaxNodeEntries is the maximum number of entries per node. A node with
	// fewer than 2 entries cannot be split, so values below 2 fall back to
	// DefaultMaxNodeEntries.
	MaxNodeEntries int
	// MinNodeEntries is the minimum number of entries per non-root node.
	// Must lie in [1, MaxNodeEntries/2]; values outside fall back to
	// MaxNodeEntries/2.
	MinNodeEntries int
	// SelfCheck runs a full consistency check after every mutation and
	// reports violations through the tracer. Meant for debugging tree
	// corruption; expensive.
	SelfCheck bool
}

func (cfg Config) normalized() Config {
	if cfg.MaxNodeEntries == 0 && cfg.MinNodeEntries == 0 {
		cfg.MaxNodeEntries = DefaultMaxNodeEntries
		cfg.MinNodeEntries = DefaultMinNodeEntries
		return cfg
	}
	if cfg.MaxNodeEntries < 2 {
		T().Infof("spatial: invalid MaxNodeEntries = %d, resetting to default value of %d",
			cfg.MaxNodeEntries, DefaultMaxNodeEntries)
		cfg.MaxNodeEntries = DefaultMaxNodeEntries
	}
	if cfg.MinNodeEntries < 1 || cfg.MinNodeEntries > cfg.MaxNodeEntries/2 {
		T().Infof("spatial: MinNodeEntries must be between 1 and MaxNodeEntries/2, resetting to %d",
			cfg.MaxNodeEntries/2)
		cfg.MinNodeEntries = cfg.MaxNodeEntries / 2
	}
	return cfg
}
