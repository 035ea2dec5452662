package stitcher

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/stackgraph/logging"
)

// Config bounds a single stitching run. There is no package-level default
// silently substituted anywhere a Config is required: callers needing
// per-language defaults build and pass their own via NewConfig.
type Config struct {
	MaxSymbolStackDepth  int  `yaml:"maxSymbolStackDepth"`  // discard paths whose precondition exceeds this depth
	MaxWorkPerPhase      int  `yaml:"maxWorkPerPhase"`      // bound concatenations attempted per phase
	DetectSimilarPaths   bool `yaml:"detectSimilarPaths"`   // enable shadowing + non-productive cycle elimination
	TraverseCyclicGreedy bool `yaml:"traverseCyclicGreedy"` // follow cyclic imports greedily: skip non-productive cycle elimination
	CancelPollInterval   int  `yaml:"cancelPollInterval"`   // poll CancellationFlag at least once per this many paths

	// Logger, if set, receives one PhaseBoundary record per completed
	// phase. It carries no YAML representation; it is wired in by the
	// caller after loading the rest of Config from disk.
	Logger *logging.Logger `yaml:"-"`
}

// NewConfig returns the historical defaults. Nothing in this package calls
// it automatically; every entry point takes a *Config as a required
// parameter.
func NewConfig() *Config {
	return &Config{
		MaxSymbolStackDepth:  64,
		MaxWorkPerPhase:      100_000,
		DetectSimilarPaths:   true,
		TraverseCyclicGreedy: false,
		CancelPollInterval:   256,
	}
}

// LoadConfig reads a YAML-encoded Config from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stitcher: read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("stitcher: parse config %s: %w", path, err)
	}
	return cfg, nil
}
