package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigFull(t *testing.T) {
	data := []byte(`
source_dir: modules
cache:
  enabled: true
  path: build/sigs.db
serve:
  address: 127.0.0.1:7463
rewriters:
  - trace
`)
	cfg, err := ParseConfig(data, "calyx.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.SourceDir != "modules" {
		t.Errorf("SourceDir = %q, want modules", cfg.SourceDir)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Path != "build/sigs.db" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Address != "127.0.0.1:7463" {
		t.Errorf("Serve.Address = %q", cfg.Serve.Address)
	}
	if len(cfg.Rewriters) != 1 || cfg.Rewriters[0] != "trace" {
		t.Errorf("Rewriters = %v, want [trace]", cfg.Rewriters)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("cache:\n  enabled: true\n"), "calyx.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.SourceDir != "." {
		t.Errorf("SourceDir = %q, want .", cfg.SourceDir)
	}
	if want := filepath.Join(".calyx", "signatures.db"); cfg.Cache.Path != want {
		t.Errorf("Cache.Path = %q, want %q", cfg.Cache.Path, want)
	}
}

func TestParseConfigRejectsUnknownField(t *testing.T) {
	_, err := ParseConfig([]byte("sourcedir: modules\n"), "calyx.yaml")
	if err == nil {
		t.Fatal("expected an error for a misspelled field")
	}
	if !strings.Contains(err.Error(), "calyx.yaml") {
		t.Errorf("error = %q, want the manifest path in it", err)
	}
}

func TestParseConfigRejectsUnknownRewriter(t *testing.T) {
	_, err := ParseConfig([]byte("rewriters: [mangle]\n"), "calyx.yaml")
	if err == nil || !strings.Contains(err.Error(), `unknown rewriter "mangle"`) {
		t.Errorf("err = %v, want an unknown-rewriter error", err)
	}
}

func TestParseConfigRejectsPortlessAddress(t *testing.T) {
	_, err := ParseConfig([]byte("serve:\n  address: localhost\n"), "calyx.yaml")
	if err == nil || !strings.Contains(err.Error(), "has no port") {
		t.Errorf("err = %v, want a no-port error", err)
	}
}

func TestLoadMissingManifestGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourceDir != "." {
		t.Errorf("SourceDir = %q, want .", cfg.SourceDir)
	}
	if cfg.Cache.Enabled || cfg.Serve.Address != "" || len(cfg.Rewriters) != 0 {
		t.Errorf("cfg = %+v, want zero-value features", cfg)
	}
}

func TestLoadReadsManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, FileName)
	if err := os.WriteFile(manifest, []byte("source_dir: src\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourceDir != "src" {
		t.Errorf("SourceDir = %q, want src", cfg.SourceDir)
	}
}
