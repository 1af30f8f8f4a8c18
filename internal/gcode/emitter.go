// Package gcode serializes planned motion sequences into numerical-control
// program text and parses program text back into classified moves for
// preview.
package gcode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mverhaert/millcode/internal/model"
	"github.com/mverhaert/millcode/internal/toolpath"
)

// Emitter produces program text from an operation using a machine profile.
// It is pure formatting: all sequencing decisions were made by the planner.
type Emitter struct {
	profile model.MachineProfile
}

func New(profileName string) *Emitter {
	return &Emitter{profile: model.GetProfile(profileName)}
}

// NewWithProfile creates an Emitter from an explicit profile, used for
// custom (non-built-in) profiles.
func NewWithProfile(profile model.MachineProfile) *Emitter {
	return &Emitter{profile: profile}
}

// Generate plans the operation and serializes the result. A geometry
// failure surfaces as an error with no partial program text.
func (e *Emitter) Generate(op model.Operation) (string, error) {
	motions, err := toolpath.Plan(op)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	e.writeHeader(&b, op)
	for _, m := range motions {
		e.writeMotion(&b, m)
	}
	e.writeFooter(&b, op)
	return b.String(), nil
}

// GenerateJob produces one program string per operation in the job.
func (e *Emitter) GenerateJob(job model.Job) ([]string, error) {
	var programs []string
	for _, op := range job.Operations {
		code, err := e.Generate(op)
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", op.Label, err)
		}
		programs = append(programs, code)
	}
	return programs, nil
}

func (e *Emitter) writeHeader(b *strings.Builder, op model.Operation) {
	p := e.profile

	label := op.Label
	if label == "" {
		label = op.Kind.String()
	}
	b.WriteString(e.comment("MILLCODE - " + strings.ToUpper(label)))
	b.WriteString(e.comment(fmt.Sprintf("PROFILE %s  UNITS %s", strings.ToUpper(p.Name), strings.ToUpper(p.Units))))

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.ToolChange != "" {
		b.WriteString(fmt.Sprintf(p.ToolChange+"\n", op.ToolNumber()))
	}
	if p.WorkOffset != "" {
		b.WriteString(p.WorkOffset + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", op.SpindleSpeed()))
	}
	if p.CoolantOn != "" {
		b.WriteString(p.CoolantOn + "\n")
	}
}

func (e *Emitter) writeFooter(b *strings.Builder, op model.Operation) {
	p := e.profile

	if p.CoolantOff != "" {
		b.WriteString(p.CoolantOff + "\n")
	}
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", e.coord(op.SafeZ()))
		b.WriteString(code + "\n")
	}
}

func (e *Emitter) writeMotion(b *strings.Builder, m toolpath.Motion) {
	p := e.profile

	switch m.Kind {
	case toolpath.KindComment:
		b.WriteString(e.comment(m.Text))

	case toolpath.KindRapid:
		b.WriteString(p.RapidMove + e.axisWords(m) + "\n")

	case toolpath.KindFeed:
		b.WriteString(p.FeedMove + e.axisWords(m) + e.feedWord(m.Feed) + "\n")

	case toolpath.KindArcCW, toolpath.KindArcCCW:
		verb := p.ArcCW
		if m.Kind == toolpath.KindArcCCW {
			verb = p.ArcCCW
		}
		b.WriteString(fmt.Sprintf("%s%s I%s J%s%s\n",
			verb, e.axisWords(m), e.coord(m.I), e.coord(m.J), e.feedWord(m.Feed)))

	case toolpath.KindCompOn:
		side := p.CompLeft
		if m.Side == toolpath.CompRight {
			side = p.CompRight
		}
		b.WriteString(fmt.Sprintf("%s %s%s D%d%s\n",
			p.FeedMove, side, e.axisWords(m), m.OffsetReg, e.feedWord(m.Feed)))

	case toolpath.KindCompOff:
		b.WriteString(fmt.Sprintf("%s %s%s%s\n",
			p.FeedMove, p.CompCancel, e.axisWords(m), e.feedWord(m.Feed)))
	}
}

// axisWords renders the coordinate words present on the motion, in X Y Z
// order, each with a leading space.
func (e *Emitter) axisWords(m toolpath.Motion) string {
	var b strings.Builder
	if m.Axes&toolpath.AxisX != 0 {
		b.WriteString(" X" + e.coord(m.X))
	}
	if m.Axes&toolpath.AxisY != 0 {
		b.WriteString(" Y" + e.coord(m.Y))
	}
	if m.Axes&toolpath.AxisZ != 0 {
		b.WriteString(" Z" + e.coord(m.Z))
	}
	return b.String()
}

// coord formats a position value with the profile's fixed decimal places so
// identical input always produces byte-identical output.
func (e *Emitter) coord(v float64) string {
	if v == 0 {
		v = 0 // normalize negative zero from floating-point arithmetic
	}
	format := fmt.Sprintf("%%.%df", e.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}

// feedWord renders an F word for positive feeds. Integral feed rates render
// without a decimal part; fractional ones use the shortest exact decimal.
func (e *Emitter) feedWord(feed float64) string {
	if feed <= 0 {
		return ""
	}
	if feed == math.Trunc(feed) {
		return " F" + strconv.FormatFloat(feed, 'f', 0, 64)
	}
	return " F" + strconv.FormatFloat(feed, 'f', -1, 64)
}

// comment wraps text in the profile's comment syntax.
func (e *Emitter) comment(text string) string {
	return e.profile.CommentPrefix + " " + text + " " + e.profile.CommentSuffix + "\n"
}
