package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/photofind/internal/cli"
)

func TestCatalogDirs(t *testing.T) {
	dirs := catalogDirs([]string{
		"/data/catalogs/a.json",
		"/data/catalogs/b.json",
		"/other/c.json",
	})
	if len(dirs) != 2 {
		t.Fatalf("dirs = %v, want 2 unique parents", dirs)
	}
	if dirs[0] != "/data/catalogs" || dirs[1] != "/other" {
		t.Errorf("dirs = %v", dirs)
	}
	if got := catalogDirs(nil); len(got) != 0 {
		t.Errorf("catalogDirs(nil) = %v", got)
	}
}

func TestParseFormat(t *testing.T) {
	if parseFormat("json") != cli.OutputJSON {
		t.Error("json not recognized")
	}
	if parseFormat("text") != cli.OutputText {
		t.Error("text not recognized")
	}
	if parseFormat("bogus") != cli.OutputText {
		t.Error("unknown format must fall back to text")
	}
}

func TestLoadCatalogs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if err := os.WriteFile(a, []byte(`[{"id":"p1","filename":"one.jpg"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`[{"id":"p2","filename":"two.jpg"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := loadCatalogs([]string{a, b})
	if err != nil {
		t.Fatalf("loadCatalogs failed: %v", err)
	}
	if len(records) != 2 || records[0].ID != "p1" || records[1].ID != "p2" {
		t.Errorf("records = %+v", records)
	}

	if _, err := loadCatalogs([]string{filepath.Join(dir, "missing.json")}); err == nil {
		t.Error("missing catalog must error")
	}
}
