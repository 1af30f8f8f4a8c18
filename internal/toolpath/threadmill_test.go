package toolpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverhaert/millcode/internal/model"
)

func testThreadParams() model.ThreadMillParams {
	p := model.DefaultThreadMillParams()
	p.ToolDiameter = 0.4
	p.MajorDiameter = 0.5
	p.MinorDiameter = 0.45
	p.TPI = 13
	p.ThreadDepth = 0.75
	p.Passes = 3
	p.FeedRate = 8.0
	p.SafeZ = 0.1
	return p
}

func TestPlanThreadMill_ZeroPathRadiusPlunge(t *testing.T) {
	// Tool radius 0.125 against a 0.25 major diameter: the path radius
	// resolves to exactly zero. The planner must substitute a straight
	// plunge, not emit a degenerate zero-radius arc or divide by zero.
	p := testThreadParams()
	p.ToolDiameter = 0.25
	p.MajorDiameter = 0.25
	p.MinorDiameter = 0.201
	p.ThreadDepth = 0.4
	p.Passes = 4

	motions, err := PlanThreadMill(p)
	require.NoError(t, err)

	var plunge bool
	for _, m := range motions {
		assert.NotEqual(t, KindArcCW, m.Kind, "no arcs for a zero path radius")
		assert.NotEqual(t, KindArcCCW, m.Kind, "no arcs for a zero path radius")
		if m.Kind == KindFeed && m.Axes == AxisZ && m.Z == -0.4 {
			plunge = true
		}
	}
	assert.True(t, plunge, "expected a direct plunge to full thread depth")
	assert.True(t, Balanced(motions))
}

func TestPlanThreadMill_RadiiSortedAndArcOffset(t *testing.T) {
	// Path radius 0.05, three passes: target radii step up by 0.05/3. The
	// arc center offset is a separately computed quantity, the nominal
	// step limit over the pass count, and deliberately does NOT equal the
	// pass's own target radius. The divergence is preserved as-is.
	motions, err := PlanThreadMill(testThreadParams())
	require.NoError(t, err)

	var compRadii []float64
	var arcOffsets []float64
	for _, m := range motions {
		switch m.Kind {
		case KindCompOn:
			compRadii = append(compRadii, m.X)
		case KindArcCW, KindArcCCW:
			arcOffsets = append(arcOffsets, m.I)
		}
	}

	require.Len(t, compRadii, 3)
	assert.InDelta(t, 0.05/3.0, compRadii[0], 1e-12)
	assert.InDelta(t, 2.0*0.05/3.0, compRadii[1], 1e-12)
	assert.InDelta(t, 0.05, compRadii[2], 1e-12)
	for i := 1; i < len(compRadii); i++ {
		assert.GreaterOrEqual(t, math.Abs(compRadii[i]), math.Abs(compRadii[i-1]))
	}

	require.NotEmpty(t, arcOffsets)
	for _, i := range arcOffsets {
		assert.InDelta(t, -1.0/3.0, i, 1e-12,
			"center offset is nominal step limit / pass count, independent of the pass radius")
	}
}

func TestPlanThreadMill_HelixDepthClamp(t *testing.T) {
	// Pitch 1/13: the helix advances one pitch per revolution and the last
	// revolution clamps to the exact remaining depth.
	p := testThreadParams()
	p.ThreadDepth = 0.4
	motions, err := PlanThreadMill(p)
	require.NoError(t, err)

	pitch := 1.0 / 13.0
	wantRevs := int(math.Ceil(0.4 / pitch))

	var helixDepths []float64
	for _, m := range motions {
		if (m.Kind == KindArcCW || m.Kind == KindArcCCW) && m.Axes&AxisZ != 0 {
			helixDepths = append(helixDepths, -m.Z)
		}
	}
	require.Len(t, helixDepths, wantRevs*3, "revolutions per pass times three passes")

	// Per pass: depths advance by one pitch and end exactly at thread depth.
	perPass := helixDepths[:wantRevs]
	for i, d := range perPass {
		want := float64(i+1) * pitch
		if want > 0.4 {
			want = 0.4
		}
		assert.InDelta(t, want, d, 1e-9, "revolution %d", i+1)
	}
	assert.InDelta(t, 0.4, perPass[len(perPass)-1], 1e-12, "final revolution lands exactly on thread depth")
}

func TestPlanThreadMill_HandCoupling(t *testing.T) {
	cases := []struct {
		hand     model.ThreadHand
		wantSide CompSide
		wantCCW  bool
	}{
		{model.RightHand, CompLeft, true},
		{model.LeftHand, CompRight, false},
	}
	for _, tc := range cases {
		p := testThreadParams()
		p.Hand = tc.hand
		motions, err := PlanThreadMill(p)
		require.NoError(t, err)
		for _, m := range motions {
			switch m.Kind {
			case KindCompOn:
				assert.Equal(t, tc.wantSide, m.Side, "%v", tc.hand)
			case KindArcCW:
				assert.False(t, tc.wantCCW, "%v: expected counter-clockwise helix", tc.hand)
			case KindArcCCW:
				assert.True(t, tc.wantCCW, "%v: expected clockwise helix", tc.hand)
			}
		}
	}
}

func TestPlanThreadMill_CompensationBalance(t *testing.T) {
	motions, err := PlanThreadMill(testThreadParams())
	require.NoError(t, err)
	assert.True(t, Balanced(motions))

	var on, off int
	for _, m := range motions {
		switch m.Kind {
		case KindCompOn:
			on++
		case KindCompOff:
			off++
		}
	}
	assert.Equal(t, 3, on, "one comp engage per radial pass")
	assert.Equal(t, on, off)
}

func TestPlanThreadMill_ToolTooLarge(t *testing.T) {
	p := testThreadParams()
	p.ToolDiameter = 0.6
	motions, err := PlanThreadMill(p)
	require.Error(t, err)
	assert.Nil(t, motions)
}
