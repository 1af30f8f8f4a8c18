// Package widgets contains custom Fyne widgets for MillCode.
package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/mverhaert/millcode/internal/gcode"
)

// Toolpath colors for different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}  // Red for rapid moves
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230} // Blue for cutting moves
	colorArc     = color.NRGBA{R: 30, G: 160, B: 255, A: 230} // Lighter blue for arcs
	colorPlunge  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}  // Green for plunge
	colorRetract = color.NRGBA{R: 180, G: 180, B: 0, A: 180}  // Yellow for retract
	colorOrigin  = color.NRGBA{R: 120, G: 120, B: 120, A: 200}
)

// arcSegments is the polyline resolution for rendering one full circle.
const arcSegments = 48

// PathPreview is a custom Fyne widget that renders a top-down XY preview of
// a parsed program's toolpath. Arcs are drawn as polylines around their I/J
// center; pure Z moves appear as plunge/retract markers.
type PathPreview struct {
	widget.BaseWidget
	moves     []gcode.Move
	maxWidth  float32
	maxHeight float32
}

// NewPathPreview creates a preview widget for the given moves.
func NewPathPreview(moves []gcode.Move, maxW, maxH float32) *PathPreview {
	pp := &PathPreview{
		moves:     moves,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pp.ExtendBaseWidget(pp)
	return pp
}

// SetMoves replaces the rendered moves and refreshes the widget.
func (pp *PathPreview) SetMoves(moves []gcode.Move) {
	pp.moves = moves
	pp.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (pp *PathPreview) CreateRenderer() fyne.WidgetRenderer {
	return newPathPreviewRenderer(pp)
}

type pathPreviewRenderer struct {
	pp      *PathPreview
	objects []fyne.CanvasObject
}

func newPathPreviewRenderer(pp *PathPreview) *pathPreviewRenderer {
	r := &pathPreviewRenderer{pp: pp}
	r.rebuild()
	return r
}

// bounds returns the XY extent of the toolpath including arc excursions.
func bounds(moves []gcode.Move) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	grow(0, 0) // work origin is always visible
	for _, m := range moves {
		grow(m.FromX, m.FromY)
		grow(m.ToX, m.ToY)
		if m.Type == gcode.MoveArc {
			cx := m.FromX + m.I
			cy := m.FromY + m.J
			radius := math.Hypot(m.I, m.J)
			grow(cx-radius, cy-radius)
			grow(cx+radius, cy+radius)
		}
	}
	return minX, minY, maxX, maxY
}

func (r *pathPreviewRenderer) rebuild() {
	r.objects = nil

	pp := r.pp
	minX, minY, maxX, maxY := bounds(pp.moves)
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	margin := float32(15)
	scaleX := (pp.maxWidth - margin*2) / float32(spanX)
	scaleY := (pp.maxHeight - margin*2) / float32(spanY)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}

	// Screen Y grows downward; program Y grows upward.
	toScreen := func(x, y float64) (float32, float32) {
		sx := float32(x-minX)*scale + margin
		sy := float32(maxY-y)*scale + margin
		return sx, sy
	}

	// Origin crosshair
	ox, oy := toScreen(0, 0)
	crossSize := float32(5)
	hLine := canvas.NewLine(colorOrigin)
	hLine.Position1 = fyne.NewPos(ox-crossSize, oy)
	hLine.Position2 = fyne.NewPos(ox+crossSize, oy)
	vLine := canvas.NewLine(colorOrigin)
	vLine.Position1 = fyne.NewPos(ox, oy-crossSize)
	vLine.Position2 = fyne.NewPos(ox, oy+crossSize)
	r.objects = append(r.objects, hLine, vLine)

	for _, m := range pp.moves {
		fromX, fromY := toScreen(m.FromX, m.FromY)
		toX, toY := toScreen(m.ToX, m.ToY)

		xyDist := math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)

		switch m.Type {
		case gcode.MoveRapid:
			if xyDist < 1e-6 {
				continue
			}
			line := canvas.NewLine(colorRapid)
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(fromX, fromY)
			line.Position2 = fyne.NewPos(toX, toY)
			r.objects = append(r.objects, line)

		case gcode.MoveFeed:
			if xyDist < 1e-6 {
				continue
			}
			line := canvas.NewLine(colorFeed)
			line.StrokeWidth = 2
			line.Position1 = fyne.NewPos(fromX, fromY)
			line.Position2 = fyne.NewPos(toX, toY)
			r.objects = append(r.objects, line)

		case gcode.MoveArc:
			r.drawArc(m, toScreen)

		case gcode.MovePlunge:
			marker := canvas.NewCircle(colorPlunge)
			markerSize := float32(4)
			marker.Resize(fyne.NewSize(markerSize, markerSize))
			marker.Move(fyne.NewPos(fromX-markerSize/2, fromY-markerSize/2))
			r.objects = append(r.objects, marker)

		case gcode.MoveRetract:
			marker := canvas.NewCircle(colorRetract)
			markerSize := float32(3)
			marker.Resize(fyne.NewSize(markerSize, markerSize))
			marker.Move(fyne.NewPos(fromX-markerSize/2, fromY-markerSize/2))
			r.objects = append(r.objects, marker)
		}
	}
}

// drawArc renders one arc move as a polyline. A move whose start and end
// coincide (the planner's full circles) sweeps the whole revolution.
func (r *pathPreviewRenderer) drawArc(m gcode.Move, toScreen func(x, y float64) (float32, float32)) {
	cx := m.FromX + m.I
	cy := m.FromY + m.J
	radius := math.Hypot(m.I, m.J)
	if radius < 1e-9 {
		return
	}

	startAngle := math.Atan2(m.FromY-cy, m.FromX-cx)
	endAngle := math.Atan2(m.ToY-cy, m.ToX-cx)

	var sweep float64
	if m.CW {
		sweep = startAngle - endAngle
		if sweep <= 1e-9 {
			sweep += 2 * math.Pi
		}
		sweep = -sweep
	} else {
		sweep = endAngle - startAngle
		if sweep <= 1e-9 {
			sweep += 2 * math.Pi
		}
	}

	steps := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * arcSegments))
	if steps < 2 {
		steps = 2
	}

	prevX, prevY := toScreen(m.FromX, m.FromY)
	for i := 1; i <= steps; i++ {
		angle := startAngle + sweep*float64(i)/float64(steps)
		px, py := toScreen(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))

		line := canvas.NewLine(colorArc)
		line.StrokeWidth = 2
		line.Position1 = fyne.NewPos(prevX, prevY)
		line.Position2 = fyne.NewPos(px, py)
		r.objects = append(r.objects, line)

		prevX, prevY = px, py
	}
}

func (r *pathPreviewRenderer) Layout(size fyne.Size)        {}
func (r *pathPreviewRenderer) Refresh()                     { r.rebuild() }
func (r *pathPreviewRenderer) Destroy()                     {}
func (r *pathPreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *pathPreviewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.pp.maxWidth, r.pp.maxHeight)
}

// RenderProgramPreview parses program text and returns a preview canvas
// object for it.
func RenderProgramPreview(program string, maxW, maxH float32) fyne.CanvasObject {
	return NewPathPreview(gcode.Parse(program), maxW, maxH)
}
