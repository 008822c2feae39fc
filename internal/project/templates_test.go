package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StowPlan/internal/model"
)

func testStore() model.TemplateStore {
	store := model.NewTemplateStore()
	tmpl := model.NewProjectTemplate(
		"Weekly Shipment",
		"standard pallet load",
		model.NewTruck("Box Truck", 24, 22, 61),
		[]model.Crate{model.NewCrate(1, "Pallet", 8, 10, 12)},
		model.DefaultSettings(),
	)
	store.Templates = append(store.Templates, tmpl)
	return store
}

func TestSaveAndLoadTemplates(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "templates.json")

	if err := SaveTemplates(path, testStore()); err != nil {
		t.Fatalf("SaveTemplates failed: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	tmpl := loaded.Templates[0]
	if tmpl.Name != "Weekly Shipment" {
		t.Errorf("expected name 'Weekly Shipment', got %q", tmpl.Name)
	}
	if tmpl.Truck.Length != 61 {
		t.Errorf("expected truck length 61, got %d", tmpl.Truck.Length)
	}
	if len(tmpl.Crates) != 1 {
		t.Errorf("expected 1 crate, got %d", len(tmpl.Crates))
	}
}

func TestLoadTemplates_MissingFileReturnsEmptyStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := LoadTemplates(filepath.Join(tmpDir, "templates.json"))
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if store.Templates == nil {
		t.Error("expected non-nil template slice")
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestLoadTemplates_NilTemplatesNormalized(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "templates.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if store.Templates == nil {
		t.Error("expected Templates to be normalized to an empty slice")
	}
}
