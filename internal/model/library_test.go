package model

import (
	"testing"
)

func TestDefaultLibraryTools(t *testing.T) {
	lib := DefaultLibrary()
	if len(lib.Tools) == 0 {
		t.Fatal("default library is empty")
	}
	for _, tool := range lib.Tools {
		if tool.ID == "" {
			t.Errorf("tool %q has empty ID", tool.Name)
		}
		if tool.Diameter <= 0 {
			t.Errorf("tool %q has non-positive diameter", tool.Name)
		}
	}
}

func TestLibraryFindByName(t *testing.T) {
	lib := DefaultLibrary()

	tool := lib.FindByName("1/2\" End Mill")
	if tool == nil {
		t.Fatal("expected to find 1/2\" End Mill")
	}
	if tool.Diameter != 0.5 {
		t.Errorf("diameter = %v, want 0.5", tool.Diameter)
	}

	if lib.FindByName("nonexistent") != nil {
		t.Error("expected nil for unknown name")
	}
}

func TestLibraryFindByID(t *testing.T) {
	lib := DefaultLibrary()
	want := lib.Tools[0]

	got := lib.FindByID(want.ID)
	if got == nil || got.Name != want.Name {
		t.Errorf("FindByID(%q) = %v", want.ID, got)
	}
}

func TestLibraryNamesFilteredByType(t *testing.T) {
	lib := DefaultLibrary()

	all := lib.Names()
	if len(all) != len(lib.Tools) {
		t.Errorf("unfiltered Names() returned %d, want %d", len(all), len(lib.Tools))
	}

	drills := lib.Names(ToolDrill)
	for _, name := range drills {
		tool := lib.FindByName(name)
		if tool == nil || tool.Type != ToolDrill {
			t.Errorf("%q is not a drill", name)
		}
	}
	if len(drills) == 0 {
		t.Error("default library should contain at least one drill")
	}
}

func TestToolApplyToParams(t *testing.T) {
	tool := NewTool("Test Mill", ToolEndMill, 0.375, 9, 11.0, 4000)

	var pocket PocketParams
	tool.ApplyToPocket(&pocket)
	if pocket.ToolDiameter != 0.375 || pocket.ToolNumber != 9 || pocket.FeedRate != 11.0 || pocket.SpindleSpeed != 4000 {
		t.Errorf("ApplyToPocket produced %+v", pocket)
	}

	var thread ThreadMillParams
	tool.ApplyToThread(&thread)
	if thread.ToolDiameter != 0.375 || thread.ToolNumber != 9 {
		t.Errorf("ApplyToThread produced %+v", thread)
	}

	var drill PeckDrillParams
	tool.ApplyToDrill(&drill)
	if drill.ToolDiameter != 0.375 || drill.SpindleSpeed != 4000 {
		t.Errorf("ApplyToDrill produced %+v", drill)
	}
}
