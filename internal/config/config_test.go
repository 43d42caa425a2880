package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
library:
  database_path: ./photos.db
  catalog_paths:
    - ./catalog.json
search:
  fuzzy_threshold: 0.7
  default_limit: 5
conversation:
  overlap_threshold: 0.4
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("expected debug true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Search.FuzzyThreshold != 0.7 {
		t.Errorf("fuzzy_threshold = %v, want 0.7", cfg.Search.FuzzyThreshold)
	}
	if cfg.Conversation.OverlapThreshold != 0.4 {
		t.Errorf("overlap_threshold = %v, want 0.4", cfg.Conversation.OverlapThreshold)
	}
	// ./ paths resolve relative to the config dir.
	if cfg.Library.DatabasePath != filepath.Join(dir, "photos.db") {
		t.Errorf("database_path = %s", cfg.Library.DatabasePath)
	}
	if cfg.Library.CatalogPaths[0] != filepath.Join(dir, "catalog.json") {
		t.Errorf("catalog_paths[0] = %s", cfg.Library.CatalogPaths[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Search.FuzzyThreshold != 0.6 {
		t.Errorf("default fuzzy_threshold = %v, want 0.6", cfg.Search.FuzzyThreshold)
	}
	if cfg.Search.SoftDeadlineMs != 3000 {
		t.Errorf("default soft_deadline_ms = %d, want 3000", cfg.Search.SoftDeadlineMs)
	}
	if cfg.Search.DebounceWindowMs != 300 {
		t.Errorf("default debounce_window_ms = %d, want 300", cfg.Search.DebounceWindowMs)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Conversation.OverlapThreshold != 0.25 {
		t.Errorf("default overlap_threshold = %v", cfg.Conversation.OverlapThreshold)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{Debug: true}
	ApplyDefaults(cfg)
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != cfg.Server.Port {
		t.Errorf("round trip port = %d, want %d", loaded.Server.Port, cfg.Server.Port)
	}
}
