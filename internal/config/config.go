// Package config loads the corosched configuration file.
package config

import (
	"os"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors corosched.yml
type Config struct {
	Policy    string `yaml:"policy"`     // fifo (by default) or lottery
	Seed      uint64 `yaml:"seed"`       // lottery seed, 0 = random
	FrameMS   int    `yaml:"frame_ms"`   // game loop frame pacing, 0 = unthrottled
	LogLevel  string `yaml:"log_level"`  // info (by default)
	LogFormat string `yaml:"log_format"` // text (by default) or json
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Policy:    "fifo",
		Seed:      0,
		FrameMS:   0,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// A missing or malformed file also yields the defaults.
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}

	// sanity clamps
	switch strings.ToLower(cfg.Policy) {
	case "fifo", "lottery":
		cfg.Policy = strings.ToLower(cfg.Policy)
	default:
		cfg.Policy = "fifo"
	}
	if cfg.FrameMS < 0 {
		cfg.FrameMS = 0
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	return cfg
}
