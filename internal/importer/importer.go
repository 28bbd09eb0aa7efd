// Package importer reads drafting input from external files: opening
// schedules from CSV and Excel, and footprints or wall centerlines from DXF.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/planverk/archdraft/internal/model"
	"github.com/xuri/excelize/v2"
)

// OpeningImportResult holds the results of an opening-schedule import.
type OpeningImportResult struct {
	Openings []model.WallOpening
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Kind     int
	Position int
	Width    int
	Height   int
	Sill     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"kind":     {"kind", "type", "opening", "opening type", "element"},
	"position": {"position", "pos", "offset", "fraction", "location"},
	"width":    {"width", "w", "opening width"},
	"height":   {"height", "h", "opening height"},
	"sill":     {"sill", "sill height", "sillheight", "cill"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row.
		// Only consider delimiters that produce more than 1 column
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
// It performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or a default
// positional mapping (Kind, Position, Width, Height, Sill) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Kind:     -1,
		Position: -1,
		Width:    -1,
		Height:   -1,
		Sill:     -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "kind":
						if mapping.Kind == -1 {
							mapping.Kind = i
						}
					case "position":
						if mapping.Position == -1 {
							mapping.Position = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "height":
						if mapping.Height == -1 {
							mapping.Height = i
						}
					case "sill":
						if mapping.Sill == -1 {
							mapping.Sill = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Kind:     0,
			Position: 1,
			Width:    2,
			Height:   3,
			Sill:     4,
		}, false
	}

	return mapping, true
}

// parseKind converts an opening kind string to a model.OpeningKind.
// It returns the kind and whether the string was recognized.
func parseKind(s string) (model.OpeningKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "door", "d":
		return model.OpeningDoor, true
	case "window", "w", "win":
		return model.OpeningWindow, true
	default:
		return model.OpeningWindow, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a WallOpening from a row using the given column mapping.
// Returns the opening, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.WallOpening, string, string) {
	var warning string

	kind := model.OpeningWindow
	if kindStr := getCell(row, mapping.Kind); kindStr != "" {
		var ok bool
		kind, ok = parseKind(kindStr)
		if !ok {
			warning = fmt.Sprintf("%s: Unknown opening kind '%s', defaulting to window", rowLabel, kindStr)
		}
	}

	posStr := getCell(row, mapping.Position)
	if posStr == "" {
		return model.WallOpening{}, fmt.Sprintf("%s: Missing position value", rowLabel), ""
	}
	pos, err := strconv.ParseFloat(posStr, 64)
	if err != nil {
		return model.WallOpening{}, fmt.Sprintf("%s: Invalid position '%s'", rowLabel, posStr), ""
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.WallOpening{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return model.WallOpening{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.WallOpening{}, fmt.Sprintf("%s: Missing height value", rowLabel), ""
	}
	height, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		return model.WallOpening{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
	}

	sill := 0.0
	if sillStr := getCell(row, mapping.Sill); sillStr != "" {
		sill, err = strconv.ParseFloat(sillStr, 64)
		if err != nil {
			return model.WallOpening{}, fmt.Sprintf("%s: Invalid sill height '%s'", rowLabel, sillStr), ""
		}
	}

	if width <= 0 || height <= 0 {
		return model.WallOpening{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
	}

	return model.NewOpening(kind, pos, width, height, sill), "", warning
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

// ImportOpeningsCSV imports an opening schedule from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportOpeningsCSV(path string) OpeningImportResult {
	result := OpeningImportResult{}

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

// ImportOpeningsFromReader imports an opening schedule from a CSV reader with
// a known delimiter.
func ImportOpeningsFromReader(reader io.Reader, delimiter rune) OpeningImportResult {
	result := OpeningImportResult{}

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

// ImportOpeningsExcel imports an opening schedule from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportOpeningsExcel(path string) OpeningImportResult {
	result := OpeningImportResult{}

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
// It detects headers, maps columns, and parses each row into openings.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) OpeningImportResult {
	result := OpeningImportResult{
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
		if mapping.Position == -1 {
			missing = append(missing, "Position")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the position column is not numeric, treat
		// the first row as an unrecognized header and keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		opening, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Openings = append(result.Openings, opening)
	}

	return result
}
