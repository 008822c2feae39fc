package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
)

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected filename config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".stowplan" {
		t.Errorf("expected parent dir .stowplan, got %s", filepath.Base(filepath.Dir(path)))
	}
}

func TestSaveAndLoadAppConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultSupportRatio = 0.5
	cfg.DefaultLoaderProfile = "AGV-500"
	cfg.AddRecentProject("/shipments/week34.json")

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultSupportRatio != 0.5 {
		t.Errorf("expected support ratio 0.5, got %f", loaded.DefaultSupportRatio)
	}
	if loaded.DefaultLoaderProfile != "AGV-500" {
		t.Errorf("expected loader profile AGV-500, got %q", loaded.DefaultLoaderProfile)
	}
	if len(loaded.RecentProjects) != 1 {
		t.Errorf("expected 1 recent project, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	defaults := model.DefaultAppConfig()
	if cfg.DefaultSupportRatio != defaults.DefaultSupportRatio {
		t.Errorf("expected default support ratio %f, got %f",
			defaults.DefaultSupportRatio, cfg.DefaultSupportRatio)
	}
}

func TestLoadAppConfig_NilRecentProjectsNormalized(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(path, []byte(`{"default_support_ratio":0.75}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("expected RecentProjects to be normalized to an empty slice")
	}
}
