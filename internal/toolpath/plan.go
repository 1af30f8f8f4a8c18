package toolpath

import (
	"fmt"

	"github.com/mverhaert/millcode/internal/model"
)

// Plan dispatches an operation to its planner.
func Plan(op model.Operation) ([]Motion, error) {
	switch op.Kind {
	case model.KindPocket:
		if op.Pocket == nil {
			return nil, fmt.Errorf("pocket operation %q has no parameters", op.ID)
		}
		return PlanPocket(*op.Pocket)
	case model.KindThreadMill:
		if op.Thread == nil {
			return nil, fmt.Errorf("thread mill operation %q has no parameters", op.ID)
		}
		return PlanThreadMill(*op.Thread)
	case model.KindPeckDrill:
		if op.Drill == nil {
			return nil, fmt.Errorf("peck drill operation %q has no parameters", op.ID)
		}
		return PlanPeckDrill(*op.Drill)
	default:
		return nil, fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}
