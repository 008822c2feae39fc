package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "shipment.json")

	p := model.NewProject()
	p.Name = "Week 34 shipment"
	p.Truck = model.NewTruck("Box Truck", 24, 22, 61)
	p.Crates = []model.Crate{
		model.NewCrate(1, "Pallet", 8, 10, 12),
		model.NewCrate(2, "Drum", 6, 9, 6),
	}

	if err := SaveProject(path, p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("project file was not created")
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if loaded.ID != p.ID {
		t.Errorf("expected id %q, got %q", p.ID, loaded.ID)
	}
	if loaded.Name != "Week 34 shipment" {
		t.Errorf("expected name 'Week 34 shipment', got %q", loaded.Name)
	}
	if loaded.Truck.Length != 61 {
		t.Errorf("expected truck length 61, got %d", loaded.Truck.Length)
	}
	if len(loaded.Crates) != 2 {
		t.Errorf("expected 2 crates, got %d", len(loaded.Crates))
	}
	if loaded.Settings.SupportRatio != 0.75 {
		t.Errorf("expected support ratio 0.75, got %f", loaded.Settings.SupportRatio)
	}
}

func TestSaveProject_CreatesParentDirs(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "shipment.json")

	if err := SaveProject(path, model.NewProject()); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}

func TestSaveAndLoadProject_WithResult(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "planned.json")

	p := model.NewProject()
	p.Truck = model.NewTruck("Van", 4, 4, 4)
	p.Result = &model.PlanResult{
		Truck: p.Truck,
		Placements: []model.Placement{
			{Crate: model.NewCrate(1, "A", 2, 2, 2)},
		},
		Instructions: map[int]model.LoadingInstruction{
			1: {Step: 1, CrateID: 1},
		},
	}

	if err := SaveProject(path, p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if loaded.Result == nil {
		t.Fatal("expected result to survive the round trip")
	}
	if len(loaded.Result.Placements) != 1 {
		t.Errorf("expected 1 placement, got %d", len(loaded.Result.Placements))
	}
	if loaded.Result.Instructions[1].Step != 1 {
		t.Errorf("expected instruction step 1, got %d", loaded.Result.Instructions[1].Step)
	}
}

func TestLoadProject_MissingFile(t *testing.T) {
	if _, err := LoadProject("/nonexistent/shipment.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadProject_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadProject(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadProject_MissingID(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "noid.json")
	if err := os.WriteFile(path, []byte(`{"name":"x"}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadProject(path); err == nil {
		t.Error("expected error for project without id")
	}
}
