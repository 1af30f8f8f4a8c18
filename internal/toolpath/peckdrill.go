package toolpath

import (
	"fmt"

	"github.com/mverhaert/millcode/internal/model"
)

// PlanPeckDrill produces the motion sequence for peck drilling. Each hole is
// drilled in depth increments no larger than the peck depth, with a full
// rapid retract to the safe plane between pecks to clear chips.
func PlanPeckDrill(p model.PeckDrillParams) ([]Motion, error) {
	positions := p.Positions
	if len(positions) == 0 {
		positions = []model.Point2D{{X: 0, Y: 0}}
	}

	pecks := DepthPasses(p.TotalDepth, p.PeckDepth)

	var motions []Motion
	motions = append(motions, Comment(fmt.Sprintf("PECK DRILL DIA %.4f DEPTH %.4f  %d HOLES",
		p.ToolDiameter, p.TotalDepth, len(positions))))
	motions = append(motions, RapidZ(p.SafeZ))

	for holeIdx, pos := range positions {
		motions = append(motions, Comment(fmt.Sprintf("HOLE %d OF %d  X%.4f Y%.4f",
			holeIdx+1, len(positions), pos.X, pos.Y)))
		motions = append(motions, RapidXY(pos.X, pos.Y))

		for _, peck := range pecks {
			motions = append(motions, FeedZ(-peck.TargetDepth, p.FeedRate))
			motions = append(motions, RapidZ(p.SafeZ))
		}
	}

	return motions, nil
}
