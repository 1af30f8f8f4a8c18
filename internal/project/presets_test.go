package project

import (
	"path/filepath"
	"testing"

	"github.com/mverhaert/millcode/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	store := model.NewPresetStore()
	store.Add(model.NewPresetFromOperation("1/2-13 tap sub", "standard coarse thread",
		model.NewThreadMillOperation("", model.DefaultThreadMillParams())))

	if err := SavePresets(path, store); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(loaded.Presets))
	}
	p := loaded.Presets[0]
	if p.Kind != model.KindThreadMill || p.Thread == nil {
		t.Fatalf("preset parameters lost: %+v", p)
	}
	if p.Thread.TPI != 13 {
		t.Errorf("expected TPI 13, got %f", p.Thread.TPI)
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	store, err := LoadPresets(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if store.Presets == nil {
		t.Error("Presets must never be nil after load")
	}
	if len(store.Presets) != 0 {
		t.Errorf("expected empty store, got %d presets", len(store.Presets))
	}
}
