package tierfs

import (
	"fmt"
	"os"

	"github.com/dendrascience/dendra-tier-fuse/util"
	"gopkg.in/yaml.v3"
)

// Default migration thresholds in bytes.
const (
	DefaultFastUpperLimit int64 = 512 * 1024 * 1024
	DefaultSlowLowerLimit int64 = 256 * 1024 * 1024
)

// Config is the process-wide mount configuration. It is immutable after
// NewHFS.
type Config struct {
	MountPoint string `yaml:"mount_point"`
	FastRoot   string `yaml:"fast_path"`
	SlowRoot   string `yaml:"slow_path"`

	// FastUpperLimit is the size at which a fast-tier file migrates to
	// the slow tier; SlowLowerLimit is the size at which a slow-tier
	// file migrates back. SlowLowerLimit must stay strictly below
	// FastUpperLimit or files would ping-pong between tiers.
	FastUpperLimit int64 `yaml:"fast_upper_limit"`
	SlowLowerLimit int64 `yaml:"slow_lower_limit"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a Config with the stock migration thresholds.
func DefaultConfig() Config {
	return Config{
		FastUpperLimit: DefaultFastUpperLimit,
		SlowLowerLimit: DefaultSlowLowerLimit,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalizes the backing roots and rejects configurations the
// filesystem cannot run with.
func (c *Config) Validate() error {
	if c.FastRoot == "" || c.SlowRoot == "" {
		return util.ErrEmptyRoot
	}
	c.FastRoot = util.NormalizeRoot(c.FastRoot)
	c.SlowRoot = util.NormalizeRoot(c.SlowRoot)
	if c.FastRoot == c.SlowRoot {
		return util.ErrIdenticalRoot
	}
	if c.FastUpperLimit <= 0 || c.SlowLowerLimit < 0 {
		return fmt.Errorf("upper limit must be positive and lower limit non-negative, got upper=%d lower=%d",
			c.FastUpperLimit, c.SlowLowerLimit)
	}
	if c.SlowLowerLimit >= c.FastUpperLimit {
		return fmt.Errorf("slow_lower_limit (%d) must be below fast_upper_limit (%d)",
			c.SlowLowerLimit, c.FastUpperLimit)
	}
	return nil
}
