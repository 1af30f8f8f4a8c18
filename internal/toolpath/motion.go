package toolpath

import "github.com/mverhaert/millcode/internal/model"

// MotionKind tags a motion primitive variant.
type MotionKind int

const (
	KindRapid   MotionKind = iota // Rapid positioning, no cutting
	KindFeed                      // Linear feed move
	KindArcCW                     // Clockwise circular/helical interpolation
	KindArcCCW                    // Counter-clockwise circular/helical interpolation
	KindCompOn                    // Engage cutter compensation on a linear lead-in move
	KindCompOff                   // Cancel compensation on a linear lead-out move
	KindComment                   // Human-readable annotation line
)

// CompSide is the side of the programmed path the tool edge is offset to.
type CompSide int

const (
	CompLeft  CompSide = iota // G41
	CompRight                 // G42
)

// Axes is a bitmask of coordinate words present on a motion.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ
)

// Motion is one tagged motion primitive. Only the fields relevant to Kind
// are meaningful: I/J for arcs, Side and OffsetReg for comp-on, Text for
// comments. Feed greater than zero emits an F word.
type Motion struct {
	Kind      MotionKind
	Axes      Axes
	X, Y, Z   float64
	Feed      float64
	I, J      float64 // Arc center offset from the start point
	Side      CompSide
	OffsetReg int // Diameter offset register for comp-on (D word)
	Text      string
}

// Comment creates an annotation primitive.
func Comment(text string) Motion {
	return Motion{Kind: KindComment, Text: text}
}

// RapidXY creates a rapid positioning move in the XY plane.
func RapidXY(x, y float64) Motion {
	return Motion{Kind: KindRapid, Axes: AxisX | AxisY, X: x, Y: y}
}

// RapidZ creates a rapid move on the Z axis only.
func RapidZ(z float64) Motion {
	return Motion{Kind: KindRapid, Axes: AxisZ, Z: z}
}

// FeedXY creates a linear cutting move in the XY plane.
func FeedXY(x, y, feed float64) Motion {
	return Motion{Kind: KindFeed, Axes: AxisX | AxisY, X: x, Y: y, Feed: feed}
}

// FeedZ creates a linear plunge or retract on the Z axis.
func FeedZ(z, feed float64) Motion {
	return Motion{Kind: KindFeed, Axes: AxisZ, Z: z, Feed: feed}
}

// Arc creates a full circular move in the XY plane ending at (x, y) with
// center offset (i, j) from the start point.
func Arc(ccw bool, x, y, i, j, feed float64) Motion {
	kind := KindArcCW
	if ccw {
		kind = KindArcCCW
	}
	return Motion{Kind: kind, Axes: AxisX | AxisY, X: x, Y: y, I: i, J: j, Feed: feed}
}

// Helix creates a circular move with simultaneous Z advance.
func Helix(ccw bool, x, y, z, i, j, feed float64) Motion {
	m := Arc(ccw, x, y, i, j, feed)
	m.Axes |= AxisZ
	m.Z = z
	return m
}

// CompOn creates the lead-in move that engages cutter compensation while
// feeding to (x, y).
func CompOn(side CompSide, offsetReg int, x, y, feed float64) Motion {
	return Motion{
		Kind:      KindCompOn,
		Axes:      AxisX | AxisY,
		X:         x,
		Y:         y,
		Feed:      feed,
		Side:      side,
		OffsetReg: offsetReg,
	}
}

// CompOff creates the lead-out move that cancels compensation while feeding
// back to (x, y).
func CompOff(x, y, feed float64) Motion {
	return Motion{Kind: KindCompOff, Axes: AxisX | AxisY, X: x, Y: y, Feed: feed}
}

// cutSense couples compensation side with rotational sense. The two are
// selected together through the tables below and never vary independently.
type cutSense struct {
	Side CompSide
	CCW  bool
}

var directionTable = map[model.Direction]cutSense{
	model.Climb:        {Side: CompLeft, CCW: true},
	model.Conventional: {Side: CompRight, CCW: false},
}

var handTable = map[model.ThreadHand]cutSense{
	model.RightHand: {Side: CompLeft, CCW: true},
	model.LeftHand:  {Side: CompRight, CCW: false},
}

// Balanced reports whether every compensation-on primitive in the sequence
// has a matching compensation-off before the end.
func Balanced(motions []Motion) bool {
	depth := 0
	for _, m := range motions {
		switch m.Kind {
		case KindCompOn:
			depth++
		case KindCompOff:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
