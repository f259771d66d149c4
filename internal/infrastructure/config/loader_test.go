package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesEmbeddedDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Models) == 0 {
		t.Fatal("expected default models")
	}
	if cfg.Preferences.DefaultModel == "" {
		t.Fatal("expected a default model name")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadHydratesMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	minimal := `config_format_version: "1"
models:
  - name: llama3.2
    endpoint: http://localhost:11434/api/chat
    model_id: llama3.2
`
	if err := os.WriteFile(path, []byte(minimal), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "llama3.2" {
		t.Fatalf("default model = %q, want llama3.2", cfg.Preferences.DefaultModel)
	}
	if cfg.Preferences.TimeoutSeconds != 60 {
		t.Fatalf("timeout = %d, want 60", cfg.Preferences.TimeoutSeconds)
	}
	if cfg.Cache.MaxEntries != 100 {
		t.Fatalf("cache max entries = %d, want 100", cfg.Cache.MaxEntries)
	}
	if cfg.History.RetentionDays != 30 {
		t.Fatalf("retention = %d, want 30", cfg.History.RetentionDays)
	}
	if cfg.Security.RulesFile == "" {
		t.Fatal("expected a rules file path")
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("FOUNDRY_CONFIG", path)

	loader := NewFileLoader("")
	if loader.Path() != path {
		t.Fatalf("resolved path = %q, want %q", loader.Path(), path)
	}
	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not created at override path: %v", err)
	}
}

func TestSaveRoundTripsLayerToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cfg.Security.Layers.Constitutional = true
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if !reloaded.Security.Layers.Constitutional {
		t.Fatal("constitutional toggle lost on round trip")
	}
}
