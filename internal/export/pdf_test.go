package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mverhaert/millcode/internal/gcode"
	"github.com/mverhaert/millcode/internal/model"
)

// buildTestJob creates a realistic job with one operation of each kind.
func buildTestJob() model.Job {
	drill := model.DefaultPeckDrillParams()
	drill.Positions = []model.Point2D{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}}

	return model.Job{
		Name:    "fixture plate",
		Profile: "Haas",
		Operations: []model.Operation{
			model.NewPocketOperation("Bearing Pocket", model.DefaultPocketParams()),
			model.NewThreadMillOperation("1/2-13 Thread", model.DefaultThreadMillParams()),
			model.NewPeckDrillOperation("Dowel Holes", drill),
		},
	}
}

func buildTestPrograms(t *testing.T, job model.Job) []string {
	t.Helper()
	programs, err := gcode.New(job.Profile).GenerateJob(job)
	if err != nil {
		t.Fatal(err)
	}
	return programs
}

func TestExportSetupSheet_CreatesFile(t *testing.T) {
	job := buildTestJob()
	path := filepath.Join(t.TempDir(), "setup.pdf")

	if err := ExportSetupSheet(path, job, buildTestPrograms(t, job)); err != nil {
		t.Fatalf("ExportSetupSheet failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestExportSetupSheet_EmptyJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.pdf")
	err := ExportSetupSheet(path, model.Job{Name: "empty"}, nil)
	if err == nil {
		t.Error("expected error for job with no operations")
	}
}

func TestExportSetupSheet_ProgramCountMismatch(t *testing.T) {
	job := buildTestJob()
	path := filepath.Join(t.TempDir(), "setup.pdf")
	err := ExportSetupSheet(path, job, []string{"M30\n"})
	if err == nil {
		t.Error("expected error for mismatched program count")
	}
}

func TestOperationSummary_CoversAllKinds(t *testing.T) {
	for _, op := range buildTestJob().Operations {
		lines := operationSummary(op)
		if len(lines) == 0 {
			t.Errorf("no summary lines for %s", op.Kind)
		}
	}
}
