package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mverhaert/millcode/internal/model"
)

func TestSaveAndLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plate"+JobFileExtension)

	drill := model.DefaultPeckDrillParams()
	drill.Positions = []model.Point2D{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}}
	job := model.Job{
		Name:    "fixture plate",
		Profile: "Fanuc",
		Operations: []model.Operation{
			model.NewPocketOperation("Bearing Pocket", model.DefaultPocketParams()),
			model.NewPeckDrillOperation("Dowel Holes", drill),
		},
	}

	if err := SaveJob(path, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	loaded, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob failed: %v", err)
	}

	if loaded.Name != "fixture plate" || loaded.Profile != "Fanuc" {
		t.Errorf("job metadata mismatch: %+v", loaded)
	}
	if len(loaded.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(loaded.Operations))
	}
	if loaded.Operations[0].Pocket == nil {
		t.Fatal("pocket parameters lost in round trip")
	}
	if loaded.Operations[0].Pocket.PocketDiameter != 3.0 {
		t.Errorf("expected pocket diameter 3.0, got %f", loaded.Operations[0].Pocket.PocketDiameter)
	}
	if len(loaded.Operations[1].Drill.Positions) != 2 {
		t.Errorf("drill positions lost in round trip")
	}
}

func TestLoadJobMissingFile(t *testing.T) {
	if _, err := LoadJob(filepath.Join(t.TempDir(), "nope.mcjob")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadJobDefaultsProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.mcjob")
	content := `{"name": "legacy", "operations": [{"id": "ab12cd34", "kind": "pocket", "pocket": {"tool_diameter": 0.5, "pocket_diameter": 2.0}}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	job, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob failed: %v", err)
	}
	if job.Profile != "Haas" {
		t.Errorf("expected profile default Haas, got %s", job.Profile)
	}
}

func TestLoadJobRejectsEmptyOperation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mcjob")
	content := `{"name": "bad", "operations": [{"id": "ab12cd34", "kind": "pocket"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadJob(path)
	if err == nil {
		t.Fatal("expected error for operation with no parameters")
	}
	if !strings.Contains(err.Error(), "no parameters") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSaveProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pocket.nc")
	program := "G20 G90\nG00 X0. Y0.\nM30\n"

	if err := SaveProgram(path, program); err != nil {
		t.Fatalf("SaveProgram failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != program {
		t.Error("program text modified on save")
	}
}

func TestSaveProgramRejectsEmpty(t *testing.T) {
	if err := SaveProgram(filepath.Join(t.TempDir(), "empty.nc"), "  \n"); err == nil {
		t.Error("expected error for empty program")
	}
}
