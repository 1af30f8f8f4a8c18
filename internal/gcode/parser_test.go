package gcode

import (
	"testing"
)

func TestParse_Empty(t *testing.T) {
	moves := Parse("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParse_CommentsOnly(t *testing.T) {
	code := "( MILLCODE - POCKET )\n( PROFILE HAAS )\n; grbl style\n"
	moves := Parse(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParse_RapidMove(t *testing.T) {
	moves := Parse("G00 X1.0000 Y2.0000\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	m := moves[0]
	if m.Type != MoveRapid {
		t.Errorf("expected MoveRapid, got %d", m.Type)
	}
	if m.ToX != 1 || m.ToY != 2 {
		t.Errorf("expected to (1,2), got (%.4f, %.4f)", m.ToX, m.ToY)
	}
}

func TestParse_ArcMove(t *testing.T) {
	code := "G01 X0.2000 Y0.0000 F8\nG03 X0.2000 Y0.0000 I-0.2000 J0.0000 F8\n"
	moves := Parse(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	m := moves[1]
	if m.Type != MoveArc {
		t.Errorf("expected MoveArc, got %d", m.Type)
	}
	if m.CW {
		t.Error("G03 must parse as counter-clockwise")
	}
	if m.I != -0.2 || m.J != 0 {
		t.Errorf("expected center offset (-0.2, 0), got (%.4f, %.4f)", m.I, m.J)
	}
}

func TestParse_HelicalArc(t *testing.T) {
	code := "G02 X0.0500 Y0.0000 Z-0.0769 I-0.3333 J0.0000 F8\n"
	moves := Parse(code)
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].Type != MoveArc || !moves[0].CW {
		t.Errorf("expected clockwise arc, got type %d cw %v", moves[0].Type, moves[0].CW)
	}
	if moves[0].ToZ != -0.0769 {
		t.Errorf("expected Z advance to -0.0769, got %.4f", moves[0].ToZ)
	}
}

func TestParse_PlungeAndRetract(t *testing.T) {
	code := "G00 X0.0000 Y0.0000\nG00 Z0.1000\nG01 Z-0.2500 F5\nG00 Z0.1000\n"
	moves := Parse(code)
	if len(moves) != 4 {
		t.Fatalf("expected 4 moves, got %d", len(moves))
	}
	if moves[2].Type != MovePlunge {
		t.Errorf("expected MovePlunge, got %d", moves[2].Type)
	}
	if moves[3].Type != MoveRetract {
		t.Errorf("expected MoveRetract, got %d", moves[3].Type)
	}
}

func TestParse_IgnoresSetupCodes(t *testing.T) {
	// Startup and footer lines carry no motion words and must not produce
	// moves, even though codes like G20 and G28 embed motion-word digits.
	code := "G20 G17 G40 G49 G80 G90\nT1 M06\nG54\nS3500 M03\nG28 G91 Z0.\nM30\n"
	moves := Parse(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves from setup/teardown lines, got %d", len(moves))
	}
}

func TestParse_CompWordsDoNotHideMotion(t *testing.T) {
	code := "G01 G41 X0.2000 Y0.0000 D1 F8\nG01 G40 X0.0000 Y0.0000 F8\n"
	moves := Parse(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[0].Type != MoveFeed || moves[1].Type != MoveFeed {
		t.Errorf("comp-carrying moves must classify as feed, got %d and %d",
			moves[0].Type, moves[1].Type)
	}
}

func TestCompBalance(t *testing.T) {
	code := "G01 G41 X0.2 Y0. D1 F8\nG03 X0.2 Y0. I-0.2 J0. F8\nG01 G40 X0. Y0. F8\n"
	on, off := CompBalance(code)
	if on != 1 || off != 1 {
		t.Errorf("expected 1 engage and 1 cancel, got %d and %d", on, off)
	}
}

func TestCompBalance_IgnoresStartupCancel(t *testing.T) {
	// A G40 in the startup reset line still counts as a cancel word; the
	// balance check in emitter tests accounts for it explicitly.
	on, off := CompBalance("G20 G17 G40 G49 G80 G90\n")
	if on != 0 || off != 1 {
		t.Errorf("expected 0 engages and 1 cancel, got %d and %d", on, off)
	}
}
