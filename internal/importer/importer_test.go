package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planverk/archdraft/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Kind,Position,Width,Height\ndoor,0.5,900,2100\nwindow,0.2,1200,1400\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Kind;Position;Width;Height\ndoor;0.5;900;2100\nwindow;0.2;1200;1400\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Kind\tPosition\tWidth\tHeight\ndoor\t0.5\t900\t2100\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Kind|Position|Width|Height\ndoor|0.5|900|2100\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Kind", "Position", "Width", "Height", "Sill"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Kind != 0 {
		t.Errorf("expected Kind at 0, got %d", mapping.Kind)
	}
	if mapping.Position != 1 {
		t.Errorf("expected Position at 1, got %d", mapping.Position)
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Height != 3 {
		t.Errorf("expected Height at 3, got %d", mapping.Height)
	}
	if mapping.Sill != 4 {
		t.Errorf("expected Sill at 4, got %d", mapping.Sill)
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	row := []string{"Type", "Offset", "W", "H", "Sill Height"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected from aliases")
	}
	if mapping.Kind != 0 || mapping.Position != 1 || mapping.Width != 2 || mapping.Height != 3 || mapping.Sill != 4 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_CaseInsensitive(t *testing.T) {
	row := []string{"KIND", "position", "WiDtH", "HEIGHT"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected regardless of case")
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Sill != -1 {
		t.Errorf("expected Sill unmapped, got %d", mapping.Sill)
	}
}

func TestDetectColumns_ReorderedHeaders(t *testing.T) {
	row := []string{"Width", "Height", "Position", "Kind"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Width != 0 || mapping.Height != 1 || mapping.Position != 2 || mapping.Kind != 3 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"door", "0.5", "900", "2100", "0"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("data row misdetected as header")
	}
	// Falls back to positional mapping.
	if mapping.Kind != 0 || mapping.Position != 1 || mapping.Width != 2 || mapping.Height != 3 || mapping.Sill != 4 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportOpeningsCSV_WithHeader(t *testing.T) {
	path := writeTempFile(t, "openings.csv",
		"Kind,Position,Width,Height,Sill\ndoor,0.3,900,2100,0\nwindow,0.7,1200,1400,900\n")

	result := ImportOpeningsCSV(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d", len(result.Openings))
	}

	door := result.Openings[0]
	if door.Kind != model.OpeningDoor {
		t.Errorf("expected door, got %s", door.Kind)
	}
	if door.Position != 0.3 || door.Width != 900 || door.Height != 2100 {
		t.Errorf("unexpected door values: %+v", door)
	}
	if door.ID == "" {
		t.Error("imported opening should get a generated id")
	}

	window := result.Openings[1]
	if window.Kind != model.OpeningWindow || window.SillHeight != 900 {
		t.Errorf("unexpected window values: %+v", window)
	}
}

func TestImportOpeningsCSV_SemicolonDelimiter(t *testing.T) {
	path := writeTempFile(t, "openings.csv",
		"Kind;Position;Width;Height\ndoor;0.5;900;2100\n")

	result := ImportOpeningsCSV(path)

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a delimiter warning, got %v", result.Warnings)
	}
}

func TestImportOpeningsCSV_NoHeaderPositional(t *testing.T) {
	path := writeTempFile(t, "openings.csv",
		"door,0.5,900,2100,0\nwindow,0.2,1200,1400,900\n")

	result := ImportOpeningsCSV(path)

	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
}

func TestImportOpeningsCSV_BadRowsAccumulateErrors(t *testing.T) {
	path := writeTempFile(t, "openings.csv",
		"Kind,Position,Width,Height\n"+
			"door,0.5,900,2100\n"+
			"door,,900,2100\n"+ // missing position
			"door,0.5,abc,2100\n"+ // bad width
			"door,0.5,-900,2100\n") // negative width

	result := ImportOpeningsCSV(path)

	if len(result.Openings) != 1 {
		t.Errorf("expected 1 good opening, got %d", len(result.Openings))
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportOpeningsCSV_UnknownKindWarnsAndDefaults(t *testing.T) {
	path := writeTempFile(t, "openings.csv",
		"Kind,Position,Width,Height\nhatch,0.5,900,2100\n")

	result := ImportOpeningsCSV(path)

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d", len(result.Openings))
	}
	if result.Openings[0].Kind != model.OpeningWindow {
		t.Errorf("unknown kind should default to window, got %s", result.Openings[0].Kind)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown opening kind") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unknown-kind warning, got %v", result.Warnings)
	}
}

func TestImportOpeningsCSV_SkipsEmptyRows(t *testing.T) {
	path := writeTempFile(t, "openings.csv",
		"Kind,Position,Width,Height\ndoor,0.5,900,2100\n,,,\nwindow,0.2,1200,1400\n")

	result := ImportOpeningsCSV(path)

	if len(result.Openings) != 2 {
		t.Errorf("expected 2 openings, got %d", len(result.Openings))
	}
	if len(result.Errors) != 0 {
		t.Errorf("empty rows should not error: %v", result.Errors)
	}
}

func TestImportOpeningsCSV_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")

	result := ImportOpeningsCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected an error for an empty file")
	}
}

func TestImportOpeningsCSV_MissingFile(t *testing.T) {
	result := ImportOpeningsCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}

func TestImportOpeningsCSV_MissingRequiredColumn(t *testing.T) {
	path := writeTempFile(t, "openings.csv",
		"Kind,Position,Height\ndoor,0.5,2100\n")

	result := ImportOpeningsCSV(path)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Width") {
		t.Errorf("error should name the missing column: %s", result.Errors[0])
	}
}

func TestImportOpeningsFromReader(t *testing.T) {
	data := "Kind,Position,Width,Height\ndoor,0.5,900,2100\n"
	result := ImportOpeningsFromReader(strings.NewReader(data), ',')

	if len(result.Openings) != 1 {
		t.Fatalf("expected 1 opening, got %d (errors: %v)", len(result.Openings), result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func writeTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "openings.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportOpeningsExcel(t *testing.T) {
	path := writeTestExcel(t, [][]interface{}{
		{"Kind", "Position", "Width", "Height", "Sill"},
		{"door", 0.3, 900, 2100, 0},
		{"window", 0.7, 1200, 1400, 900},
	})

	result := ImportOpeningsExcel(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Openings) != 2 {
		t.Fatalf("expected 2 openings, got %d", len(result.Openings))
	}
	if result.Openings[0].Kind != model.OpeningDoor {
		t.Errorf("expected door, got %s", result.Openings[0].Kind)
	}
	if result.Openings[1].SillHeight != 900 {
		t.Errorf("expected sill 900, got %f", result.Openings[1].SillHeight)
	}
}

func TestImportOpeningsExcel_MissingFile(t *testing.T) {
	result := ImportOpeningsExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}
