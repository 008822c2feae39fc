package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path, err := DefaultInventoryPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == "" {
		t.Fatal("expected non-empty path")
	}
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".stowplan" {
		t.Errorf("expected parent dir .stowplan, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	inv := model.Inventory{
		Trucks: []model.TruckPreset{
			model.NewTruckPreset("Test Truck", 20, 20, 50),
		},
		Crates: []model.CratePreset{
			model.NewCratePreset("Test Crate", 8, 10, 12),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Trucks) != 1 {
		t.Errorf("expected 1 truck, got %d", len(loaded.Trucks))
	}
	if loaded.Trucks[0].Name != "Test Truck" {
		t.Errorf("expected truck name 'Test Truck', got %q", loaded.Trucks[0].Name)
	}
	if loaded.Trucks[0].Length != 50 {
		t.Errorf("expected truck length 50, got %d", loaded.Trucks[0].Length)
	}

	if len(loaded.Crates) != 1 {
		t.Errorf("expected 1 crate preset, got %d", len(loaded.Crates))
	}
	if loaded.Crates[0].Name != "Test Crate" {
		t.Errorf("expected crate name 'Test Crate', got %q", loaded.Crates[0].Name)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "inventory.json")

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Trucks) == 0 {
		t.Error("expected default trucks")
	}
	if len(loaded.Crates) == 0 {
		t.Error("expected default crate presets")
	}

	// The default inventory should have been written to disk
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default inventory to be saved: %v", err)
	}
}

func TestLoadInventory_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadInventory(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImportInventory_MergesAndSkipsDuplicates(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "import.json")

	existing := model.Inventory{
		Trucks: []model.TruckPreset{
			{ID: "t1", Name: "Existing Truck", Width: 20, Height: 20, Length: 50},
		},
		Crates: []model.CratePreset{
			{ID: "c1", Name: "Existing Crate", Width: 8, Height: 10, Length: 12},
		},
	}

	imported := model.Inventory{
		Trucks: []model.TruckPreset{
			{ID: "t1", Name: "Duplicate Truck", Width: 1, Height: 1, Length: 1},
			{ID: "t2", Name: "New Truck", Width: 25, Height: 27, Length: 161},
		},
		Crates: []model.CratePreset{
			{ID: "c2", Name: "New Crate", Width: 4, Height: 4, Length: 30},
		},
	}
	data, err := json.MarshalIndent(imported, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Trucks) != 2 {
		t.Errorf("expected 2 trucks after merge, got %d", len(merged.Trucks))
	}
	if merged.Trucks[0].Name != "Existing Truck" {
		t.Errorf("duplicate id must not overwrite, got %q", merged.Trucks[0].Name)
	}
	if len(merged.Crates) != 2 {
		t.Errorf("expected 2 crate presets after merge, got %d", len(merged.Crates))
	}
}

func TestExportInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "export.json")

	inv := model.DefaultInventory()
	if err := ExportInventory(path, inv); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Trucks) != len(inv.Trucks) {
		t.Errorf("expected %d trucks, got %d", len(inv.Trucks), len(loaded.Trucks))
	}
}
