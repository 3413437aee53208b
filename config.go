package cachemgr

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultAutoCleanupInterval = 5 * time.Minute
	DefaultRegistryLockTimeout = 5 * time.Second
)

// Config holds the orchestrator configuration.
type Config struct {
	// AutoCleanup starts the scheduler when the orchestrator is created or reconfigured.
	AutoCleanup bool `yaml:"auto_cleanup"`
	// AutoCleanupInterval is the scheduler tick interval.
	AutoCleanupInterval time.Duration `yaml:"auto_cleanup_interval"`
	// MaxConcurrency bounds the worker pool of a cleanup pass. Zero means GOMAXPROCS.
	MaxConcurrency int `yaml:"max_concurrency"`
	// MaxCleanupItems caps the entries removed from one module per pass. Zero means unlimited.
	MaxCleanupItems int `yaml:"max_cleanup_items"`
	// MemoryBudgetBytes switches the default pressure sampler to process resident
	// memory relative to this budget. Zero samples host memory utilization.
	MemoryBudgetBytes int64 `yaml:"memory_budget_bytes"`
	// RegistryLockTimeout bounds how long registration calls wait for the registry lock.
	RegistryLockTimeout time.Duration `yaml:"registry_lock_timeout"`
	// Strategies holds per-strategy overrides keyed by strategy name.
	Strategies map[string]StrategyConfig `yaml:"strategies"`
}

// StrategyConfig overrides the settings of a registered strategy.
type StrategyConfig struct {
	// Enabled toggles the strategy when set. Requires the strategy to expose SetEnabled.
	Enabled *bool `yaml:"enabled"`
	// Parameters are applied with SetConfiguration.
	Parameters Parameters `yaml:"parameters"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.AutoCleanupInterval < 0 {
		return configError("auto_cleanup_interval", "auto cleanup interval cannot be negative")
	}
	if c.MaxConcurrency < 0 {
		return configError("max_concurrency", "max concurrency cannot be negative")
	}
	if c.MaxCleanupItems < 0 {
		return configError("max_cleanup_items", "max cleanup items cannot be negative")
	}
	if c.MemoryBudgetBytes < 0 {
		return configError("memory_budget_bytes", "memory budget cannot be negative")
	}
	if c.RegistryLockTimeout < 0 {
		return configError("registry_lock_timeout", "registry lock timeout cannot be negative")
	}
	return nil
}

// SetDefaults applies default values to unset fields in the configuration.
func (c *Config) SetDefaults() {
	if c.AutoCleanupInterval == 0 {
		c.AutoCleanupInterval = DefaultAutoCleanupInterval
	}
	if c.RegistryLockTimeout == 0 {
		c.RegistryLockTimeout = DefaultRegistryLockTimeout
	}
}

// concurrency returns the worker pool size for n modules.
func (c *Config) concurrency(n int) int {
	limit := c.MaxConcurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return max(min(n, limit), 1)
}

// ParseConfig decodes a YAML document into a Config and validates it. Unset fields
// receive their defaults.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, configError("yaml", "failed to parse configuration: %v", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads and parses a YAML configuration file from the local
// filesystem.
func LoadConfig(path string) (Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve configuration path %s: %w", path, err)
	}
	return LoadConfigFS(billy.NewLocal(), abs)
}

// LoadConfigFS reads and parses a YAML configuration file from fsys.
func LoadConfigFS(fsys core.ReadFS, path string) (Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}
	return ParseConfig(data)
}
