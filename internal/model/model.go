package model

import (
	"fmt"

	"github.com/google/uuid"
)

// OperationKind identifies which machining operation an Operation describes.
type OperationKind string

const (
	KindPocket     OperationKind = "pocket"     // Circular pocket milling
	KindThreadMill OperationKind = "threadmill" // Internal thread milling
	KindPeckDrill  OperationKind = "peckdrill"  // Peck drilling cycle
)

func (k OperationKind) String() string {
	switch k {
	case KindPocket:
		return "Circular Pocket"
	case KindThreadMill:
		return "Thread Mill"
	case KindPeckDrill:
		return "Peck Drill"
	default:
		return string(k)
	}
}

// Direction selects climb or conventional milling. The choice fixes both the
// rotational sense of circular moves and the cutter compensation side as one
// unit; they are never configurable independently.
type Direction int

const (
	Climb        Direction = iota // G41 comp, counter-clockwise travel
	Conventional                  // G42 comp, clockwise travel
)

func (d Direction) String() string {
	if d == Conventional {
		return "Conventional"
	}
	return "Climb"
}

// ThreadHand selects right- or left-hand thread. Like Direction, one value
// fixes both compensation side and rotational sense.
type ThreadHand int

const (
	RightHand ThreadHand = iota // G41 comp, counter-clockwise helix
	LeftHand                    // G42 comp, clockwise helix
)

func (h ThreadHand) String() string {
	if h == LeftHand {
		return "Left Hand"
	}
	return "Right Hand"
}

// Point2D represents an XY coordinate in inches.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FieldError is a validation failure attached to a named input field.
// Validation happens at the form boundary; the toolpath core only ever sees
// parameters that passed these checks, except the geometry feasibility guard,
// which the core owns.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PocketParams holds the inputs for a circular pocket milling operation.
type PocketParams struct {
	ToolDiameter   float64   `json:"tool_diameter"`   // End mill diameter (in)
	PocketDiameter float64   `json:"pocket_diameter"` // Finished pocket diameter (in)
	TotalDepth     float64   `json:"total_depth"`     // Full pocket depth below top surface (in)
	DepthPerPass   float64   `json:"depth_per_pass"`  // Max axial engagement per pass (in)
	Stepover       float64   `json:"stepover"`        // Radial step between concentric passes (in)
	Direction      Direction `json:"direction"`       // Climb or conventional
	SpindleSpeed   int       `json:"spindle_speed"`   // RPM
	FeedRate       float64   `json:"feed_rate"`       // Cutting feed (in/min)
	SafeZ          float64   `json:"safe_z"`          // Retract plane above top surface (in)
	ToolNumber     int       `json:"tool_number"`     // Tool changer slot
}

// Validate reports field-level constraint violations for the pocket form.
// The tool-vs-pocket diameter ordering is deliberately not checked here: that
// is the geometry resolver's feasibility guard.
func (p PocketParams) Validate() []FieldError {
	var errs []FieldError
	if p.ToolDiameter <= 0 {
		errs = append(errs, FieldError{"tool_diameter", "must be positive"})
	}
	if p.PocketDiameter <= 0 {
		errs = append(errs, FieldError{"pocket_diameter", "must be positive"})
	}
	if p.TotalDepth <= 0 {
		errs = append(errs, FieldError{"total_depth", "must be positive"})
	}
	if p.DepthPerPass <= 0 {
		errs = append(errs, FieldError{"depth_per_pass", "must be positive"})
	} else if p.TotalDepth > 0 && p.TotalDepth < p.DepthPerPass {
		errs = append(errs, FieldError{"depth_per_pass", "cannot exceed total depth"})
	}
	if p.Stepover <= 0 {
		errs = append(errs, FieldError{"stepover", "must be positive"})
	}
	if p.SpindleSpeed <= 0 {
		errs = append(errs, FieldError{"spindle_speed", "must be positive"})
	}
	if p.FeedRate <= 0 {
		errs = append(errs, FieldError{"feed_rate", "must be positive"})
	}
	if p.SafeZ <= 0 {
		errs = append(errs, FieldError{"safe_z", "must be positive"})
	}
	if p.ToolNumber < 1 {
		errs = append(errs, FieldError{"tool_number", "must be at least 1"})
	}
	return errs
}

// ThreadMillParams holds the inputs for an internal thread milling operation.
type ThreadMillParams struct {
	ToolDiameter  float64    `json:"tool_diameter"`  // Thread mill cutter diameter (in)
	MajorDiameter float64    `json:"major_diameter"` // Thread major diameter (in)
	MinorDiameter float64    `json:"minor_diameter"` // Thread minor / pre-drill diameter (in)
	TPI           float64    `json:"tpi"`            // Threads per inch
	ThreadDepth   float64    `json:"thread_depth"`   // Axial length of thread (in)
	Passes        int        `json:"passes"`         // Radial passes, 1-5
	Hand          ThreadHand `json:"hand"`           // Right or left hand
	SpindleSpeed  int        `json:"spindle_speed"`  // RPM
	FeedRate      float64    `json:"feed_rate"`      // Cutting feed (in/min)
	SafeZ         float64    `json:"safe_z"`         // Retract plane above top surface (in)
	ToolNumber    int        `json:"tool_number"`    // Tool changer slot
}

// Pitch returns the axial advance per revolution, 1/TPI.
func (p ThreadMillParams) Pitch() float64 {
	if p.TPI <= 0 {
		return 0
	}
	return 1.0 / p.TPI
}

// Validate reports field-level constraint violations for the thread mill form.
func (p ThreadMillParams) Validate() []FieldError {
	var errs []FieldError
	if p.ToolDiameter <= 0 {
		errs = append(errs, FieldError{"tool_diameter", "must be positive"})
	}
	if p.MajorDiameter <= 0 {
		errs = append(errs, FieldError{"major_diameter", "must be positive"})
	}
	if p.MinorDiameter <= 0 {
		errs = append(errs, FieldError{"minor_diameter", "must be positive"})
	} else if p.MajorDiameter > 0 && p.MajorDiameter <= p.MinorDiameter {
		errs = append(errs, FieldError{"major_diameter", "must exceed minor diameter"})
	}
	if p.TPI <= 0 {
		errs = append(errs, FieldError{"tpi", "must be positive"})
	}
	if p.ThreadDepth <= 0 {
		errs = append(errs, FieldError{"thread_depth", "must be positive"})
	}
	if p.Passes < 1 || p.Passes > 5 {
		errs = append(errs, FieldError{"passes", "must be between 1 and 5"})
	}
	if p.SpindleSpeed <= 0 {
		errs = append(errs, FieldError{"spindle_speed", "must be positive"})
	}
	if p.FeedRate <= 0 {
		errs = append(errs, FieldError{"feed_rate", "must be positive"})
	}
	if p.SafeZ <= 0 {
		errs = append(errs, FieldError{"safe_z", "must be positive"})
	}
	if p.ToolNumber < 1 {
		errs = append(errs, FieldError{"tool_number", "must be at least 1"})
	}
	return errs
}

// PeckDrillParams holds the inputs for a peck drilling operation. Positions is
// the list of hole centers; an empty list means one hole at the origin.
type PeckDrillParams struct {
	ToolDiameter float64   `json:"tool_diameter"` // Drill diameter (in), informational
	TotalDepth   float64   `json:"total_depth"`   // Hole depth below top surface (in)
	PeckDepth    float64   `json:"peck_depth"`    // Max depth per peck (in)
	Positions    []Point2D `json:"positions"`     // Hole centers
	SpindleSpeed int       `json:"spindle_speed"` // RPM
	FeedRate     float64   `json:"feed_rate"`     // Drilling feed (in/min)
	SafeZ        float64   `json:"safe_z"`        // Retract plane above top surface (in)
	ToolNumber   int       `json:"tool_number"`   // Tool changer slot
}

// Validate reports field-level constraint violations for the drill form.
func (p PeckDrillParams) Validate() []FieldError {
	var errs []FieldError
	if p.ToolDiameter <= 0 {
		errs = append(errs, FieldError{"tool_diameter", "must be positive"})
	}
	if p.TotalDepth <= 0 {
		errs = append(errs, FieldError{"total_depth", "must be positive"})
	}
	if p.PeckDepth <= 0 {
		errs = append(errs, FieldError{"peck_depth", "must be positive"})
	} else if p.TotalDepth > 0 && p.TotalDepth < p.PeckDepth {
		errs = append(errs, FieldError{"peck_depth", "cannot exceed total depth"})
	}
	if p.SpindleSpeed <= 0 {
		errs = append(errs, FieldError{"spindle_speed", "must be positive"})
	}
	if p.FeedRate <= 0 {
		errs = append(errs, FieldError{"feed_rate", "must be positive"})
	}
	if p.SafeZ <= 0 {
		errs = append(errs, FieldError{"safe_z", "must be positive"})
	}
	if p.ToolNumber < 1 {
		errs = append(errs, FieldError{"tool_number", "must be at least 1"})
	}
	return errs
}

// Operation wraps one configured machining operation. Exactly one of the
// parameter pointers is non-nil, matching Kind.
type Operation struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Kind   OperationKind     `json:"kind"`
	Pocket *PocketParams     `json:"pocket,omitempty"`
	Thread *ThreadMillParams `json:"thread,omitempty"`
	Drill  *PeckDrillParams  `json:"drill,omitempty"`
}

// NewPocketOperation creates a pocket operation with a generated ID.
func NewPocketOperation(label string, params PocketParams) Operation {
	return Operation{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Kind:   KindPocket,
		Pocket: &params,
	}
}

// NewThreadMillOperation creates a thread mill operation with a generated ID.
func NewThreadMillOperation(label string, params ThreadMillParams) Operation {
	return Operation{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Kind:   KindThreadMill,
		Thread: &params,
	}
}

// NewPeckDrillOperation creates a peck drill operation with a generated ID.
func NewPeckDrillOperation(label string, params PeckDrillParams) Operation {
	return Operation{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Kind:   KindPeckDrill,
		Drill:  &params,
	}
}

// Validate dispatches to the active parameter record's validation.
func (o Operation) Validate() []FieldError {
	switch o.Kind {
	case KindPocket:
		if o.Pocket == nil {
			return []FieldError{{"kind", "pocket operation has no pocket parameters"}}
		}
		return o.Pocket.Validate()
	case KindThreadMill:
		if o.Thread == nil {
			return []FieldError{{"kind", "thread mill operation has no thread parameters"}}
		}
		return o.Thread.Validate()
	case KindPeckDrill:
		if o.Drill == nil {
			return []FieldError{{"kind", "peck drill operation has no drill parameters"}}
		}
		return o.Drill.Validate()
	default:
		return []FieldError{{"kind", fmt.Sprintf("unknown operation kind %q", o.Kind)}}
	}
}

// ToolNumber returns the tool changer slot of the active parameter record.
func (o Operation) ToolNumber() int {
	switch {
	case o.Pocket != nil:
		return o.Pocket.ToolNumber
	case o.Thread != nil:
		return o.Thread.ToolNumber
	case o.Drill != nil:
		return o.Drill.ToolNumber
	}
	return 0
}

// SpindleSpeed returns the RPM of the active parameter record.
func (o Operation) SpindleSpeed() int {
	switch {
	case o.Pocket != nil:
		return o.Pocket.SpindleSpeed
	case o.Thread != nil:
		return o.Thread.SpindleSpeed
	case o.Drill != nil:
		return o.Drill.SpindleSpeed
	}
	return 0
}

// SafeZ returns the retract plane of the active parameter record.
func (o Operation) SafeZ() float64 {
	switch {
	case o.Pocket != nil:
		return o.Pocket.SafeZ
	case o.Thread != nil:
		return o.Thread.SafeZ
	case o.Drill != nil:
		return o.Drill.SafeZ
	}
	return 0
}

func (o Operation) ToolDiameter() float64 {
	switch {
	case o.Pocket != nil:
		return o.Pocket.ToolDiameter
	case o.Thread != nil:
		return o.Thread.ToolDiameter
	case o.Drill != nil:
		return o.Drill.ToolDiameter
	}
	return 0
}

func (o Operation) FeedRate() float64 {
	switch {
	case o.Pocket != nil:
		return o.Pocket.FeedRate
	case o.Thread != nil:
		return o.Thread.FeedRate
	case o.Drill != nil:
		return o.Drill.FeedRate
	}
	return 0
}

// DefaultPocketParams returns sensible pocket defaults for a 1/2" end mill.
func DefaultPocketParams() PocketParams {
	return PocketParams{
		ToolDiameter:   0.5,
		PocketDiameter: 3.0,
		TotalDepth:     0.5,
		DepthPerPass:   0.25,
		Stepover:       0.2,
		Direction:      Climb,
		SpindleSpeed:   3500,
		FeedRate:       12.0,
		SafeZ:          0.1,
		ToolNumber:     1,
	}
}

// DefaultThreadMillParams returns defaults for a 1/2-13 internal thread.
func DefaultThreadMillParams() ThreadMillParams {
	return ThreadMillParams{
		ToolDiameter:  0.25,
		MajorDiameter: 0.5,
		MinorDiameter: 0.4218,
		TPI:           13,
		ThreadDepth:   0.75,
		Passes:        3,
		Hand:          RightHand,
		SpindleSpeed:  4500,
		FeedRate:      8.0,
		SafeZ:         0.1,
		ToolNumber:    2,
	}
}

// DefaultPeckDrillParams returns defaults for a 1/4" drill.
func DefaultPeckDrillParams() PeckDrillParams {
	return PeckDrillParams{
		ToolDiameter: 0.25,
		TotalDepth:   1.0,
		PeckDepth:    0.25,
		SpindleSpeed: 2800,
		FeedRate:     5.0,
		SafeZ:        0.1,
		ToolNumber:   3,
	}
}

// Job ties a set of operations and a machine profile together for save/load.
type Job struct {
	Name       string      `json:"name"`
	Operations []Operation `json:"operations"`
	Profile    string      `json:"profile"` // Machine profile name
}

func NewJob() Job {
	return Job{
		Name:       "Untitled",
		Operations: []Operation{},
		Profile:    "Haas",
	}
}
