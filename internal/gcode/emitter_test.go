package gcode

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverhaert/millcode/internal/model"
)

func TestGenerate_PocketHeaderAndFooter(t *testing.T) {
	op := model.NewPocketOperation("Bearing Pocket", model.DefaultPocketParams())
	code, err := New("Haas").Generate(op)
	require.NoError(t, err)

	assert.Contains(t, code, "( MILLCODE - BEARING POCKET )")
	assert.Contains(t, code, "( PROFILE HAAS  UNITS INCH )")
	assert.Contains(t, code, "G20 G17 G40 G49 G80 G90\n")
	assert.Contains(t, code, "T1 M06\n")
	assert.Contains(t, code, "G54\n")
	assert.Contains(t, code, "S3500 M03\n")
	assert.Contains(t, code, "M08\n")
	assert.Contains(t, code, "M09\n")
	assert.Contains(t, code, "M05\n")
	assert.True(t, strings.HasSuffix(code, "M30\n"), "program must end with M30")
}

func TestGenerate_SafeZPlaceholder(t *testing.T) {
	params := model.DefaultPocketParams()
	params.SafeZ = 0.25
	op := model.NewPocketOperation("", params)

	code, err := New("Haas").Generate(op)
	require.NoError(t, err)
	assert.Contains(t, code, "G00 Z0.2500\n", "footer retract must substitute the clearance height")
	assert.NotContains(t, code, "[SafeZ]")
}

func TestGenerate_CompBalance(t *testing.T) {
	op := model.NewPocketOperation("", model.DefaultPocketParams())
	code, err := New("Haas").Generate(op)
	require.NoError(t, err)

	// 7 stepover passes at each of 2 depths, plus one G40 in the startup
	// reset line.
	on, off := CompBalance(code)
	assert.Equal(t, 14, on)
	assert.Equal(t, 14+1, off)
}

func TestGenerate_Deterministic(t *testing.T) {
	op := model.NewThreadMillOperation("", model.DefaultThreadMillParams())
	e := New("Haas")

	first, err := e.Generate(op)
	require.NoError(t, err)
	second, err := e.Generate(op)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical input must produce byte-identical programs")
}

func TestGenerate_GeometryInfeasible(t *testing.T) {
	params := model.DefaultPocketParams()
	params.ToolDiameter = 3.0
	params.PocketDiameter = 0.5
	op := model.NewPocketOperation("", params)

	code, err := New("Haas").Generate(op)
	require.Error(t, err)
	assert.Empty(t, code, "no partial program on a planning failure")
}

func TestGenerate_UnknownProfileFallsBackToGeneric(t *testing.T) {
	op := model.NewPeckDrillOperation("", model.DefaultPeckDrillParams())
	code, err := New("Mazatrol").Generate(op)
	require.NoError(t, err)

	assert.Contains(t, code, "( PROFILE GENERIC  UNITS INCH )")
	assert.NotContains(t, code, "M08", "Generic profile carries no coolant commands")
}

func TestFeedWordFormatting(t *testing.T) {
	e := New("Haas")

	assert.Equal(t, " F12", e.feedWord(12))
	assert.Equal(t, " F8", e.feedWord(8.0))
	assert.Equal(t, " F12.5", e.feedWord(12.5))
	assert.Equal(t, "", e.feedWord(0), "rapid moves carry no feed word")
}

func TestCoordFormatting(t *testing.T) {
	e := New("Haas")

	assert.Equal(t, "1.2500", e.coord(1.25))
	assert.Equal(t, "-0.0769", e.coord(-0.0769))
	assert.Equal(t, "0.0000", e.coord(math.Copysign(0, -1)), "negative zero must render without a sign")
}

func TestGenerate_RoundTripThroughParser(t *testing.T) {
	op := model.NewPocketOperation("", model.DefaultPocketParams())
	code, err := New("Haas").Generate(op)
	require.NoError(t, err)

	moves := Parse(code)
	require.NotEmpty(t, moves)

	arcs := 0
	plunges := 0
	for _, m := range moves {
		switch m.Type {
		case MoveArc:
			arcs++
			assert.False(t, m.CW, "climb pocket arcs are counter-clockwise")
			assert.InDelta(t, -m.ToX, m.I, 1e-9, "full-circle center offset points back to pocket center")
		case MovePlunge:
			plunges++
		}
	}
	assert.Equal(t, 14, arcs)
	assert.Equal(t, 2, plunges)
}

func TestGenerateJob(t *testing.T) {
	job := model.Job{
		Name: "fixture plate",
		Operations: []model.Operation{
			model.NewPocketOperation("pocket", model.DefaultPocketParams()),
			model.NewPeckDrillOperation("dowel holes", model.DefaultPeckDrillParams()),
		},
	}

	programs, err := New("Haas").GenerateJob(job)
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Contains(t, programs[0], "( MILLCODE - POCKET )")
	assert.Contains(t, programs[1], "( MILLCODE - DOWEL HOLES )")
}

func TestGenerateJob_FailedOperationAborts(t *testing.T) {
	bad := model.DefaultPocketParams()
	bad.ToolDiameter = bad.PocketDiameter
	job := model.Job{
		Operations: []model.Operation{
			model.NewPocketOperation("good", model.DefaultPocketParams()),
			model.NewPocketOperation("bad", bad),
		},
	}

	programs, err := New("Haas").GenerateJob(job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Nil(t, programs)
}
