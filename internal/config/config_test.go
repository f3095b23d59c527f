package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fanvault/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(tempHome); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatalf("Chdir back returned error: %v", err)
		}
	})

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Tools.Fanficfare != "fanficfare" {
		t.Fatalf("unexpected fanficfare binary: %q", cfg.Tools.Fanficfare)
	}
	if !cfg.Download.IncludeImages {
		t.Fatal("expected include_images enabled by default")
	}
	wantStaging := filepath.Join(tempHome, ".cache", "fanvault", "staging")
	if cfg.Build.StagingDir != wantStaging {
		t.Fatalf("unexpected staging dir: got %q want %q", cfg.Build.StagingDir, wantStaging)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tools]
fanficfare = "/opt/ff/bin/fanficfare"

[download]
include_images = false
timeout_seconds = 30

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing config at %q", path)
	}
	if cfg.Tools.Fanficfare != "/opt/ff/bin/fanficfare" {
		t.Fatalf("unexpected fanficfare binary: %q", cfg.Tools.Fanficfare)
	}
	if cfg.Tools.Zimwriterfs != "zimwriterfs" {
		t.Fatalf("unset tool should keep its default, got %q", cfg.Tools.Zimwriterfs)
	}
	if cfg.Download.IncludeImages {
		t.Fatal("expected include_images disabled")
	}
	if cfg.Download.TimeoutSeconds != 30 {
		t.Fatalf("unexpected download timeout: %d", cfg.Download.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging values should be lowercased: %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported logging format")
	}
}

func TestLoadMissingExplicitFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "nope.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to be reported as absent")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Tools.EbookConvert != "ebook-convert" {
		t.Fatalf("unexpected ebook-convert binary: %q", cfg.Tools.EbookConvert)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("sample config is empty")
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
