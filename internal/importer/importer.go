// Package importer reads hole tables from CSV and Excel files and circle
// features from DXF drawings, producing drill operations. It supports
// automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mverhaert/millcode/internal/model"
)

// Hole is one imported hole feature: a center position with an optional
// diameter and depth. Zero diameter or depth means the source did not
// specify it and the operation defaults apply.
type Hole struct {
	Label    string
	Position model.Point2D
	Diameter float64
	Depth    float64
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Holes    []Hole
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	X        int
	Y        int
	Diameter int
	Depth    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "hole", "id", "description", "desc", "feature"},
	"x":        {"x", "xpos", "x pos", "x position", "x (in)"},
	"y":        {"y", "ypos", "y pos", "y position", "y (in)"},
	"diameter": {"diameter", "dia", "d", "drill", "size", "dia (in)"},
	"depth":    {"depth", "z", "total depth", "depth (in)"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe. The delimiter
// producing the most consistent multi-column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected, or a
// default positional mapping (label, x, y, diameter, depth) and false if
// no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:    -1,
		X:        -1,
		Y:        -1,
		Diameter: -1,
		Depth:    -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "label":
						if mapping.Label == -1 {
							mapping.Label = i
						}
					case "x":
						if mapping.X == -1 {
							mapping.X = i
						}
					case "y":
						if mapping.Y == -1 {
							mapping.Y = i
						}
					case "diameter":
						if mapping.Diameter == -1 {
							mapping.Diameter = i
						}
					case "depth":
						if mapping.Depth == -1 {
							mapping.Depth = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:    0,
			X:        1,
			Y:        2,
			Diameter: 3,
			Depth:    4,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Hole from a row using the given column mapping.
// Returns the hole, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, holeCount int) (Hole, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Hole %d", holeCount+1)
	}

	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return Hole{}, fmt.Sprintf("%s: Missing X value", rowLabel), ""
	}
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return Hole{}, fmt.Sprintf("%s: Invalid X '%s'", rowLabel, xStr), ""
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return Hole{}, fmt.Sprintf("%s: Missing Y value", rowLabel), ""
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return Hole{}, fmt.Sprintf("%s: Invalid Y '%s'", rowLabel, yStr), ""
	}

	hole := Hole{
		Label:    label,
		Position: model.Point2D{X: x, Y: y},
	}

	var warning string

	diaStr := getCell(row, mapping.Diameter)
	if diaStr != "" {
		dia, err := strconv.ParseFloat(diaStr, 64)
		if err != nil || dia <= 0 {
			return Hole{}, fmt.Sprintf("%s: Invalid diameter '%s'", rowLabel, diaStr), ""
		}
		hole.Diameter = dia
	} else {
		warning = fmt.Sprintf("%s: No diameter, using tool default", rowLabel)
	}

	depthStr := getCell(row, mapping.Depth)
	if depthStr != "" {
		depth, err := strconv.ParseFloat(depthStr, 64)
		if err != nil || depth <= 0 {
			return Hole{}, fmt.Sprintf("%s: Invalid depth '%s'", rowLabel, depthStr), ""
		}
		hole.Depth = depth
	}

	return hole, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports holes from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports holes from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already
// known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports holes from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into holes.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: a non-numeric X cell in the first row means an
		// unrecognized header, skip it but keep positional mapping.
		if len(rows[0]) >= 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		hole, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Holes))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Holes = append(result.Holes, hole)
	}

	return result
}

// ToOperations groups imported holes by diameter and depth and builds one
// peck-drill operation per group from the base parameters. A zero hole
// diameter or depth falls back to the base value.
func ToOperations(holes []Hole, base model.PeckDrillParams) []model.Operation {
	type groupKey struct {
		diameter float64
		depth    float64
	}

	groups := make(map[groupKey][]Hole)
	var order []groupKey
	for _, h := range holes {
		key := groupKey{
			diameter: roundTenth(valueOr(h.Diameter, base.ToolDiameter)),
			depth:    roundTenth(valueOr(h.Depth, base.TotalDepth)),
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], h)
	}

	// Smallest drill first for a sensible tool sequence.
	sort.Slice(order, func(i, j int) bool {
		if order[i].diameter != order[j].diameter {
			return order[i].diameter < order[j].diameter
		}
		return order[i].depth < order[j].depth
	})

	var ops []model.Operation
	for _, key := range order {
		params := base
		params.ToolDiameter = key.diameter
		params.TotalDepth = key.depth
		params.Positions = nil
		for _, h := range groups[key] {
			params.Positions = append(params.Positions, h.Position)
		}

		label := fmt.Sprintf("%.4f drill x%d", key.diameter, len(params.Positions))
		ops = append(ops, model.NewPeckDrillOperation(label, params))
	}
	return ops
}

func valueOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// roundTenth rounds to a tenth of a thousandth so float noise from the
// source file cannot split one drill size into several groups.
func roundTenth(v float64) float64 {
	return math.Round(v*10000) / 10000
}
