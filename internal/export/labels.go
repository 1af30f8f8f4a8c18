package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mverhaert/millcode/internal/model"
)

// LabelInfo holds the data encoded into each operation traveler label's QR
// code.
type LabelInfo struct {
	JobName      string  `json:"job"`
	OpLabel      string  `json:"label"`
	Kind         string  `json:"kind"`
	ToolNumber   int     `json:"tool"`
	ToolDiameter float64 `json:"tool_dia_in"`
	SpindleSpeed int     `json:"rpm"`
	FeedRate     float64 `json:"feed_ipm"`
	Profile      string  `json:"profile"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded traveler labels, one per
// operation in the job. Each label carries the operation name, tooling and
// a QR code encoding the operation metadata as JSON, laid out on a standard
// label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, job model.Job) error {
	labels := CollectLabelInfos(job)
	if len(labels) == 0 {
		return fmt.Errorf("no operations to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.OpLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single traveler label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, index int, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", index, info.OpLabel)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Operation label (bold, larger), truncated to fit
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	opLabel := info.OpLabel
	if pdf.GetStringWidth(opLabel) > textW {
		for len(opLabel) > 0 && pdf.GetStringWidth(opLabel+"...") > textW {
			opLabel = opLabel[:len(opLabel)-1]
		}
		opLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, opLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, info.Kind, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	tooling := fmt.Sprintf("T%d  %.4f in  %d RPM", info.ToolNumber, info.ToolDiameter, info.SpindleSpeed)
	pdf.CellFormat(textW, 3, tooling, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%s  F%.1f", info.Profile, info.FeedRate), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a job for use in
// testing or alternative export formats.
func CollectLabelInfos(job model.Job) []LabelInfo {
	var labels []LabelInfo
	for _, op := range job.Operations {
		label := op.Label
		if label == "" {
			label = op.Kind.String()
		}
		labels = append(labels, LabelInfo{
			JobName:      job.Name,
			OpLabel:      label,
			Kind:         op.Kind.String(),
			ToolNumber:   op.ToolNumber(),
			ToolDiameter: op.ToolDiameter(),
			SpindleSpeed: op.SpindleSpeed(),
			FeedRate:     op.FeedRate(),
			Profile:      job.Profile,
		})
	}
	return labels
}
