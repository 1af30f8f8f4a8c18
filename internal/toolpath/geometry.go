// Package toolpath converts machining parameters into ordered motion
// primitive sequences. It is a pure, single-pass pipeline: resolve geometry,
// schedule passes, sequence motions. Serialization to program text lives in
// the gcode package.
package toolpath

import "fmt"

// GeometryError reports that the cutter cannot fit inside the target feature.
// It fails fast before any pass is scheduled; no partial output is produced.
type GeometryError struct {
	ToolDiameter    float64
	FeatureDiameter float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("tool diameter %.4f cannot fit inside feature diameter %.4f",
		e.ToolDiameter, e.FeatureDiameter)
}

// Geometry holds the resolved radii for a circular feature.
type Geometry struct {
	ToolRadius    float64 // Half the cutter diameter
	FeatureRadius float64 // Half the feature's finished diameter
	PathRadius    float64 // Radius the tool center follows to cut the boundary
}

// ResolveCircle converts cutter and feature diameters into the radii the
// planner works with. The cutter must be strictly smaller than the feature:
// an equal or larger tool cannot sweep the boundary.
func ResolveCircle(toolDiameter, featureDiameter float64) (Geometry, error) {
	if toolDiameter >= featureDiameter {
		return Geometry{}, &GeometryError{
			ToolDiameter:    toolDiameter,
			FeatureDiameter: featureDiameter,
		}
	}
	toolR := toolDiameter / 2.0
	featureR := featureDiameter / 2.0
	return Geometry{
		ToolRadius:    toolR,
		FeatureRadius: featureR,
		PathRadius:    featureR - toolR,
	}, nil
}

// ResolveThread resolves thread milling geometry against the major diameter.
// Unlike ResolveCircle the guard is non-strict: a cutter exactly the size of
// the major diameter yields a zero path radius, which the sequencer handles
// by substituting a straight plunge for the helical entry.
func ResolveThread(toolDiameter, majorDiameter float64) (Geometry, error) {
	if toolDiameter > majorDiameter {
		return Geometry{}, &GeometryError{
			ToolDiameter:    toolDiameter,
			FeatureDiameter: majorDiameter,
		}
	}
	toolR := toolDiameter / 2.0
	majorR := majorDiameter / 2.0
	return Geometry{
		ToolRadius:    toolR,
		FeatureRadius: majorR,
		PathRadius:    majorR - toolR,
	}, nil
}
