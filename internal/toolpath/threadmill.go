package toolpath

import (
	"fmt"
	"math"

	"github.com/mverhaert/millcode/internal/model"
)

// nominalThreadStep is the machine/tooling ceiling on the radial step of a
// thread milling pass, in inches. It is a safety limit, not a user setting.
const nominalThreadStep = 1.0

// PlanThreadMill produces the motion sequence for an internal thread. Each
// radial pass helixes down from the top surface, advancing one pitch per
// revolution until the thread depth is reached, with the final revolution
// clamped to the exact remainder.
//
// The arc center offset magnitude is the nominal radial step limit divided
// by the pass count. It is computed independently of the pass target radius
// and the two can diverge; both formulas are kept as-is.
func PlanThreadMill(p model.ThreadMillParams) ([]Motion, error) {
	geo, err := ResolveThread(p.ToolDiameter, p.MajorDiameter)
	if err != nil {
		return nil, err
	}

	pitch := p.Pitch()
	sense := handTable[p.Hand]
	radii := FixedCountRadii(geo.PathRadius, p.Passes, nominalThreadStep)
	arcOffset := nominalThreadStep / float64(p.Passes)

	var motions []Motion
	motions = append(motions, Comment(fmt.Sprintf("THREAD MILL %.4f-%g %s DEPTH %.4f",
		p.MajorDiameter, p.TPI, p.Hand, p.ThreadDepth)))
	motions = append(motions, RapidXY(0, 0))
	motions = append(motions, RapidZ(p.SafeZ))

	if geo.PathRadius <= clampEpsilon {
		// Feature is exactly tool-sized: no helical entry is possible, so
		// substitute a straight plunge instead of a zero-radius arc.
		motions = append(motions, Comment("PATH RADIUS ZERO - PLUNGE CUT"))
		motions = append(motions, FeedZ(-p.ThreadDepth, p.FeedRate))
		motions = append(motions, FeedZ(p.SafeZ, p.FeedRate))
		return motions, nil
	}

	revs := int(math.Ceil(p.ThreadDepth/pitch - clampEpsilon))
	if revs < 1 {
		revs = 1
	}

	for passIdx, r := range radii {
		motions = append(motions, Comment(fmt.Sprintf("THREAD PASS %d OF %d  RADIUS %.4f", passIdx+1, len(radii), r)))
		motions = append(motions, RapidXY(0, 0))
		motions = append(motions, FeedZ(0, p.FeedRate))
		motions = append(motions, CompOn(sense.Side, p.ToolNumber, r, 0, p.FeedRate))

		for rev := 1; rev <= revs; rev++ {
			z := float64(rev) * pitch
			if z > p.ThreadDepth {
				z = p.ThreadDepth
			}
			motions = append(motions, Helix(sense.CCW, r, 0, -z, -arcOffset, 0, p.FeedRate))
		}

		motions = append(motions, CompOff(0, 0, p.FeedRate))
		motions = append(motions, RapidZ(p.SafeZ))
	}

	return motions, nil
}
