package toolpath

import (
	"fmt"

	"github.com/mverhaert/millcode/internal/model"
)

// PlanPocket produces the motion sequence for a circular pocket. Each depth
// level plunges at the feature center, then cuts concentric full circles at
// the stepover-accumulated radii, engaging compensation on the way out to
// each radius and cancelling it on the return to center.
func PlanPocket(p model.PocketParams) ([]Motion, error) {
	geo, err := ResolveCircle(p.ToolDiameter, p.PocketDiameter)
	if err != nil {
		return nil, err
	}

	sense := directionTable[p.Direction]
	depths := DepthPasses(p.TotalDepth, p.DepthPerPass)
	radii := StepoverRadii(geo.PathRadius, p.Stepover)

	var motions []Motion
	motions = append(motions, Comment(fmt.Sprintf("CIRCULAR POCKET DIA %.4f DEPTH %.4f", p.PocketDiameter, p.TotalDepth)))
	motions = append(motions, RapidXY(0, 0))
	motions = append(motions, RapidZ(p.SafeZ))

	for _, dp := range depths {
		motions = append(motions, Comment(fmt.Sprintf("PASS %d OF %d  Z-%.4f", dp.Index, len(depths), dp.TargetDepth)))
		motions = append(motions, RapidXY(0, 0))
		motions = append(motions, FeedZ(-dp.TargetDepth, p.FeedRate))

		for _, r := range radii {
			// Lead out to the pass radius with compensation engaged,
			// full circle, then back to center with comp cancelled.
			motions = append(motions, CompOn(sense.Side, p.ToolNumber, r, 0, p.FeedRate))
			motions = append(motions, Arc(sense.CCW, r, 0, -r, 0, p.FeedRate))
			motions = append(motions, CompOff(0, 0, p.FeedRate))
		}
	}

	motions = append(motions, RapidZ(p.SafeZ))
	return motions, nil
}
