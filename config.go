package ply

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the ply.toml configuration file.
type Config struct {
	Layout  LayoutAreaConfig `toml:"layout"`
	Limits  LimitsConfig     `toml:"limits"`
	Culling CullingConfig    `toml:"culling"`
	Scroll  ScrollConfig     `toml:"scroll"`
	Debug   DebugConfig      `toml:"debug"`
}

// LayoutAreaConfig sets the layout area dimensions.
type LayoutAreaConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// LimitsConfig sets the engine capacities.
type LimitsConfig struct {
	// Maximum elements declarable per frame
	MaxElementCount int `toml:"max_element_count"`
	// Maximum measured words kept in the text cache
	MaxTextCacheWordCount int `toml:"max_text_cache_word_count"`
}

// CullingConfig controls offscreen render command culling.
type CullingConfig struct {
	Enabled bool `toml:"enabled"`
}

// ScrollConfig controls scroll state persistence.
type ScrollConfig struct {
	// Frames to retain scroll state for containers not declared (0 = evict
	// as soon as a container misses a frame)
	RetainStateFrames int `toml:"retain_state_frames"`
}

// DebugConfig controls the inspector overlay and debug logging.
type DebugConfig struct {
	Enabled bool `toml:"enabled"`
	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutAreaConfig{Width: 800, Height: 600},
		Limits: LimitsConfig{
			MaxElementCount:       defaultMaxElementCount,
			MaxTextCacheWordCount: defaultMaxMeasureTextCacheWordCount,
		},
		Culling: CullingConfig{Enabled: true},
	}
}

// LoadConfig reads a Config from a TOML file. Missing fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveConfig writes a Config to a TOML file.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
