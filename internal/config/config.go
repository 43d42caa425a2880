// Package config provides configuration loading and structs for the Photofind server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug        bool               `yaml:"debug"`
	Server       ServerConfig       `yaml:"server"`
	Library      LibraryConfig      `yaml:"library"`
	Search       SearchConfig       `yaml:"search"`
	Conversation ConversationConfig `yaml:"conversation"`
	Watch        WatchConfig        `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LibraryConfig holds the photo catalog sources.
type LibraryConfig struct {
	DatabasePath string   `yaml:"database_path"`
	CatalogPaths []string `yaml:"catalog_paths"`
}

// SearchConfig holds indexing, matching, and ranking settings.
type SearchConfig struct {
	// FuzzyThreshold is the minimum edit-distance similarity for a fuzzy
	// term match to be accepted.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
	// FuzzyDiscount scales a fuzzy match's score contribution below an
	// exact match of the same term.
	FuzzyDiscount float64 `yaml:"fuzzy_discount"`
	// FreeTextDiscount scales a free-text fallback hit below a fuzzy hit.
	FreeTextDiscount float64 `yaml:"freetext_discount"`
	// SoftDeadlineMs is the wall-clock budget per search; exceeding it
	// returns partial results rather than an error.
	SoftDeadlineMs int `yaml:"soft_deadline_ms"`
	// DebounceWindowMs is the coalescing window for rapid successive searches.
	DebounceWindowMs int `yaml:"debounce_window_ms"`
	DefaultLimit     int `yaml:"default_limit"`
	MaxLimit         int `yaml:"max_limit"`
	// IndexYieldBatch is how many records the index builder processes
	// between scheduler yields.
	IndexYieldBatch int `yaml:"index_yield_batch"`
}

// ConversationConfig holds context-manager tuning.
type ConversationConfig struct {
	// OverlapThreshold is the minimum semantic-term overlap ratio below
	// which a new utterance is treated as a topic change. Heuristic, tunable.
	OverlapThreshold float64 `yaml:"overlap_threshold"`
}

// WatchConfig holds catalog watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Library.DatabasePath = expandPath(cfg.Library.DatabasePath, configDir)
	for i := range cfg.Library.CatalogPaths {
		cfg.Library.CatalogPaths[i] = expandPath(cfg.Library.CatalogPaths[i], configDir)
	}
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
