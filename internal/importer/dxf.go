package importer

import (
	"fmt"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/mverhaert/millcode/internal/model"
)

// ImportDXF imports circle entities from a DXF drawing as hole features.
// The circle center becomes the hole position and its diameter carries
// through; depth is left unset for the operation defaults to fill in.
// Non-circle entities are skipped with a warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Circle:
			result.Holes = append(result.Holes, Hole{
				Label:    fmt.Sprintf("Circle %d", len(result.Holes)+1),
				Position: model.Point2D{X: e.Center[0], Y: e.Center[1]},
				Diameter: 2 * e.Radius,
			})
		case *entity.Point:
			result.Holes = append(result.Holes, Hole{
				Label:    fmt.Sprintf("Point %d", len(result.Holes)+1),
				Position: model.Point2D{X: e.Coord[0], Y: e.Coord[1]},
			})
		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported entities (only CIRCLE and POINT are imported)", skipped))
	}

	if len(result.Holes) == 0 {
		result.Errors = append(result.Errors, "No circle or point features found in DXF file")
		return result
	}

	// Deterministic ordering: left to right, then bottom to top.
	sort.SliceStable(result.Holes, func(i, j int) bool {
		a, b := result.Holes[i].Position, result.Holes[j].Position
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	return result
}

// ToPocketOperations builds one circular pocket operation per hole from the
// base parameters, using the hole diameter as the pocket diameter. Holes
// without a diameter are skipped.
func ToPocketOperations(holes []Hole, base model.PocketParams) []model.Operation {
	var ops []model.Operation
	for _, h := range holes {
		if h.Diameter <= 0 {
			continue
		}
		params := base
		params.PocketDiameter = h.Diameter
		if h.Depth > 0 {
			params.TotalDepth = h.Depth
		}
		label := h.Label
		if label == "" {
			label = fmt.Sprintf("%.4f pocket", h.Diameter)
		}
		ops = append(ops, model.NewPocketOperation(label, params))
	}
	return ops
}
