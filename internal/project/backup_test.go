package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultSupportRatio = 0.5
	inv := model.DefaultInventory()
	store := testStore()

	if err := ExportAllData(path, cfg, inv, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version == "" {
		t.Error("expected version to be set")
	}
	if backup.CreatedAt == "" {
		t.Error("expected creation timestamp")
	}
	if backup.Config.DefaultSupportRatio != 0.5 {
		t.Errorf("expected support ratio 0.5, got %f", backup.Config.DefaultSupportRatio)
	}
	if len(backup.Inventory.Trucks) != len(inv.Trucks) {
		t.Errorf("expected %d trucks, got %d", len(inv.Trucks), len(backup.Inventory.Trucks))
	}
	if len(backup.Templates.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(backup.Templates.Templates))
	}
}

func TestImportAllData_MissingVersion(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for backup without version")
	}
}

func TestImportAllData_MissingFile(t *testing.T) {
	if _, err := ImportAllData("/nonexistent/backup.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
