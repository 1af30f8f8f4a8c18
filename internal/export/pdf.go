// Package export writes job setup sheets and QR-coded operation traveler
// labels to PDF files.
package export

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mverhaert/millcode/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// ExportSetupSheet generates a PDF setup sheet for a job: a tool list, one
// parameter block per operation, and program statistics. programs must hold
// one generated program per operation, in order.
func ExportSetupSheet(path string, job model.Job, programs []string) error {
	if len(job.Operations) == 0 {
		return fmt.Errorf("no operations to export")
	}
	if len(programs) != len(job.Operations) {
		return fmt.Errorf("program count %d does not match operation count %d",
			len(programs), len(job.Operations))
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	name := job.Name
	if name == "" {
		name = "Untitled Job"
	}
	pdf.CellFormat(contentWidth, 10, "Setup Sheet: "+name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Machine profile: %s    Operations: %d", job.Profile, len(job.Operations)), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, pdf.GetY()+2, pageWidth-marginRight, pdf.GetY()+2)
	pdf.SetY(pdf.GetY() + 6)

	renderToolTable(pdf, job)

	for i, op := range job.Operations {
		renderOperationBlock(pdf, i+1, op, programs[i])
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by MillCode", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// renderToolTable draws the tool list for the job.
func renderToolTable(pdf *fpdf.Fpdf, job model.Job) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 7, "Tool List", "", 1, "L", false, 0, "")

	colWidths := []float64{20, 35, 45, 30, 30}
	headers := []string{"Tool", "Diameter", "Operation", "Spindle", "Feed"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, header := range headers {
		pdf.SetXY(x, pdf.GetY())
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 9)
	for i, op := range job.Operations {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		row := []string{
			fmt.Sprintf("T%d", op.ToolNumber()),
			fmt.Sprintf("%.4f in", op.ToolDiameter()),
			op.Kind.String(),
			fmt.Sprintf("%d RPM", op.SpindleSpeed()),
			fmt.Sprintf("%.1f in/min", op.FeedRate()),
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, pdf.GetY())
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

// renderOperationBlock draws one operation's parameters and program stats.
func renderOperationBlock(pdf *fpdf.Fpdf, num int, op model.Operation, program string) {
	label := op.Label
	if label == "" {
		label = op.Kind.String()
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Op %d: %s (%s)", num, label, op.Kind.String()), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range operationSummary(op) {
		pdf.SetX(marginLeft + 5)
		pdf.CellFormat(contentWidth-5, 5, line, "", 1, "L", false, 0, "")
	}

	blocks := strings.Count(strings.TrimRight(program, "\n"), "\n") + 1
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetX(marginLeft + 5)
	pdf.CellFormat(contentWidth-5, 5, fmt.Sprintf("Program: %d blocks", blocks), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)
}

// operationSummary renders the kind-specific parameter lines shown on the
// setup sheet.
func operationSummary(op model.Operation) []string {
	switch op.Kind {
	case model.KindPocket:
		p := op.Pocket
		return []string{
			fmt.Sprintf("Pocket diameter: %.4f in    Total depth: %.4f in", p.PocketDiameter, p.TotalDepth),
			fmt.Sprintf("Depth per pass: %.4f in    Stepover: %.4f in    Direction: %s", p.DepthPerPass, p.Stepover, p.Direction),
			fmt.Sprintf("Safe Z: %.4f in", p.SafeZ),
		}
	case model.KindThreadMill:
		p := op.Thread
		return []string{
			fmt.Sprintf("Thread: %.4f-%.0f %s    Minor: %.4f in", p.MajorDiameter, p.TPI, p.Hand, p.MinorDiameter),
			fmt.Sprintf("Thread depth: %.4f in    Passes: %d", p.ThreadDepth, p.Passes),
			fmt.Sprintf("Safe Z: %.4f in", p.SafeZ),
		}
	case model.KindPeckDrill:
		p := op.Drill
		return []string{
			fmt.Sprintf("Holes: %d    Total depth: %.4f in    Peck: %.4f in", max(len(p.Positions), 1), p.TotalDepth, p.PeckDepth),
			fmt.Sprintf("Safe Z: %.4f in", p.SafeZ),
		}
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
