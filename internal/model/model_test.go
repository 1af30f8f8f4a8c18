package model

import (
	"testing"
)

// ─── Validation ────────────────────────────────────────────

func hasFieldError(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestPocketParamsValidateDefaults(t *testing.T) {
	if errs := DefaultPocketParams().Validate(); len(errs) != 0 {
		t.Errorf("default pocket params should validate clean, got %v", errs)
	}
}

func TestPocketParamsValidateRejectsNonPositive(t *testing.T) {
	p := DefaultPocketParams()
	p.ToolDiameter = 0
	p.Stepover = -0.1
	p.SafeZ = 0

	errs := p.Validate()
	for _, field := range []string{"tool_diameter", "stepover", "safe_z"} {
		if !hasFieldError(errs, field) {
			t.Errorf("expected error on %s, got %v", field, errs)
		}
	}
}

func TestPocketParamsValidateDepthPerPassExceedsTotal(t *testing.T) {
	p := DefaultPocketParams()
	p.TotalDepth = 0.2
	p.DepthPerPass = 0.5

	if !hasFieldError(p.Validate(), "depth_per_pass") {
		t.Error("expected depth_per_pass error when it exceeds total depth")
	}
}

func TestPocketParamsValidateDoesNotCheckGeometry(t *testing.T) {
	// A tool wider than the pocket is a toolpath feasibility problem, not a
	// form error.
	p := DefaultPocketParams()
	p.ToolDiameter = 5.0
	p.PocketDiameter = 1.0

	if errs := p.Validate(); len(errs) != 0 {
		t.Errorf("oversized tool should pass form validation, got %v", errs)
	}
}

func TestThreadMillParamsValidateDefaults(t *testing.T) {
	if errs := DefaultThreadMillParams().Validate(); len(errs) != 0 {
		t.Errorf("default thread params should validate clean, got %v", errs)
	}
}

func TestThreadMillParamsValidateMajorMinorOrdering(t *testing.T) {
	p := DefaultThreadMillParams()
	p.MajorDiameter = 0.4
	p.MinorDiameter = 0.5

	if !hasFieldError(p.Validate(), "major_diameter") {
		t.Error("expected major_diameter error when minor exceeds major")
	}
}

func TestThreadMillParamsValidatePassesRange(t *testing.T) {
	p := DefaultThreadMillParams()

	p.Passes = 0
	if !hasFieldError(p.Validate(), "passes") {
		t.Error("expected passes error for 0")
	}

	p.Passes = 6
	if !hasFieldError(p.Validate(), "passes") {
		t.Error("expected passes error for 6")
	}

	p.Passes = 5
	if hasFieldError(p.Validate(), "passes") {
		t.Error("5 passes should be allowed")
	}
}

func TestThreadMillPitch(t *testing.T) {
	p := ThreadMillParams{TPI: 13}
	want := 1.0 / 13.0
	if got := p.Pitch(); got != want {
		t.Errorf("Pitch() = %v, want %v", got, want)
	}

	p.TPI = 0
	if got := p.Pitch(); got != 0 {
		t.Errorf("Pitch() with zero TPI = %v, want 0", got)
	}
}

func TestPeckDrillParamsValidateDefaults(t *testing.T) {
	if errs := DefaultPeckDrillParams().Validate(); len(errs) != 0 {
		t.Errorf("default drill params should validate clean, got %v", errs)
	}
}

func TestPeckDrillParamsValidatePeckExceedsTotal(t *testing.T) {
	p := DefaultPeckDrillParams()
	p.TotalDepth = 0.1
	p.PeckDepth = 0.25

	if !hasFieldError(p.Validate(), "peck_depth") {
		t.Error("expected peck_depth error when it exceeds total depth")
	}
}

// ─── Operations ────────────────────────────────────────────

func TestNewOperationsHaveIDsAndKinds(t *testing.T) {
	pocket := NewPocketOperation("P1", DefaultPocketParams())
	thread := NewThreadMillOperation("T1", DefaultThreadMillParams())
	drill := NewPeckDrillOperation("D1", DefaultPeckDrillParams())

	for _, op := range []Operation{pocket, thread, drill} {
		if op.ID == "" {
			t.Errorf("operation %q has empty ID", op.Label)
		}
	}

	if pocket.Kind != KindPocket || pocket.Pocket == nil {
		t.Error("pocket operation not wired to pocket params")
	}
	if thread.Kind != KindThreadMill || thread.Thread == nil {
		t.Error("thread operation not wired to thread params")
	}
	if drill.Kind != KindPeckDrill || drill.Drill == nil {
		t.Error("drill operation not wired to drill params")
	}
}

func TestOperationKindString(t *testing.T) {
	if got := KindPocket.String(); got != "Circular Pocket" {
		t.Errorf("KindPocket.String() = %q", got)
	}
	if got := KindThreadMill.String(); got != "Thread Mill" {
		t.Errorf("KindThreadMill.String() = %q", got)
	}
	if got := KindPeckDrill.String(); got != "Peck Drill" {
		t.Errorf("KindPeckDrill.String() = %q", got)
	}
}

func TestOperationValidateDispatch(t *testing.T) {
	op := NewPocketOperation("P1", DefaultPocketParams())
	if errs := op.Validate(); len(errs) != 0 {
		t.Errorf("valid pocket operation reported errors: %v", errs)
	}

	op.Pocket.FeedRate = 0
	if errs := op.Validate(); !hasFieldError(errs, "feed_rate") {
		t.Errorf("expected feed_rate error, got %v", errs)
	}
}

func TestOperationValidateMissingParams(t *testing.T) {
	op := Operation{ID: "x", Label: "broken", Kind: KindPocket}
	if errs := op.Validate(); len(errs) == 0 {
		t.Error("operation without params should not validate")
	}
}

func TestOperationAccessors(t *testing.T) {
	p := DefaultThreadMillParams()
	p.ToolNumber = 7
	p.SpindleSpeed = 6000
	p.FeedRate = 9.5
	p.SafeZ = 0.25
	op := NewThreadMillOperation("T1", p)

	if op.ToolNumber() != 7 {
		t.Errorf("ToolNumber() = %d", op.ToolNumber())
	}
	if op.SpindleSpeed() != 6000 {
		t.Errorf("SpindleSpeed() = %d", op.SpindleSpeed())
	}
	if op.FeedRate() != 9.5 {
		t.Errorf("FeedRate() = %v", op.FeedRate())
	}
	if op.SafeZ() != 0.25 {
		t.Errorf("SafeZ() = %v", op.SafeZ())
	}
	if op.ToolDiameter() != p.ToolDiameter {
		t.Errorf("ToolDiameter() = %v", op.ToolDiameter())
	}
}

func TestDirectionAndHandStrings(t *testing.T) {
	if Climb.String() != "Climb" || Conventional.String() != "Conventional" {
		t.Error("Direction.String() mismatch")
	}
	if RightHand.String() != "Right Hand" || LeftHand.String() != "Left Hand" {
		t.Error("ThreadHand.String() mismatch")
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob()
	if job.Name != "Untitled" {
		t.Errorf("job name = %q", job.Name)
	}
	if job.Profile != "Haas" {
		t.Errorf("job profile = %q", job.Profile)
	}
	if job.Operations == nil {
		t.Error("operations should be an empty slice, not nil")
	}
}
