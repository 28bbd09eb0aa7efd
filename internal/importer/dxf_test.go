package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"

	"github.com/planverk/archdraft/internal/model"
)

// writeTestDXF builds a drawing with the given closed polyline and loose
// lines, saved into a temp dir.
func writeTestDXF(t *testing.T, footprint model.Outline, lines []Centerline) string {
	t.Helper()
	d := dxf.NewDrawing()

	if len(footprint) > 0 {
		vertices := make([][]float64, len(footprint))
		for i, p := range footprint {
			vertices[i] = []float64{p.X, p.Y}
		}
		if _, err := d.LwPolyline(true, vertices...); err != nil {
			t.Fatal(err)
		}
	}
	for _, l := range lines {
		if _, err := d.Line(l.Start.X, l.Start.Y, 0, l.End.X, l.End.Y, 0); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "plan.dxf")
	if err := d.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportDXF_Polyline(t *testing.T) {
	footprint := model.Outline{
		{X: 0, Y: 0}, {X: 8000, Y: 0}, {X: 8000, Y: 6000}, {X: 0, Y: 6000},
	}
	path := writeTestDXF(t, footprint, nil)

	result := ImportDXF(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Footprints) != 1 {
		t.Fatalf("expected 1 footprint, got %d", len(result.Footprints))
	}

	got := result.Footprints[0]
	if len(got) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(got))
	}
	for i, want := range footprint {
		if math.Abs(got[i].X-want.X) > 1e-6 || math.Abs(got[i].Y-want.Y) > 1e-6 {
			t.Errorf("vertex %d: expected (%f, %f), got (%f, %f)", i, want.X, want.Y, got[i].X, got[i].Y)
		}
	}
}

func TestImportDXF_LooseLinesBecomeCenterlines(t *testing.T) {
	lines := []Centerline{
		{Start: model.Point2D{X: 0, Y: 0}, End: model.Point2D{X: 5000, Y: 0}},
		{Start: model.Point2D{X: 0, Y: 4000}, End: model.Point2D{X: 5000, Y: 4000}},
	}
	path := writeTestDXF(t, nil, lines)

	result := ImportDXF(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Footprints) != 0 {
		t.Errorf("expected no footprints, got %d", len(result.Footprints))
	}
	if len(result.Centerlines) != 2 {
		t.Fatalf("expected 2 centerlines, got %d", len(result.Centerlines))
	}
}

func TestImportDXF_ChainedLinesCloseIntoFootprint(t *testing.T) {
	// Four LINE entities forming a rectangle must chain into one footprint.
	lines := []Centerline{
		{Start: model.Point2D{X: 0, Y: 0}, End: model.Point2D{X: 4000, Y: 0}},
		{Start: model.Point2D{X: 4000, Y: 0}, End: model.Point2D{X: 4000, Y: 3000}},
		{Start: model.Point2D{X: 4000, Y: 3000}, End: model.Point2D{X: 0, Y: 3000}},
		{Start: model.Point2D{X: 0, Y: 3000}, End: model.Point2D{X: 0, Y: 0}},
	}
	path := writeTestDXF(t, nil, lines)

	result := ImportDXF(path)

	if len(result.Footprints) != 1 {
		t.Fatalf("expected 1 chained footprint, got %d (centerlines: %d)",
			len(result.Footprints), len(result.Centerlines))
	}
	if len(result.Centerlines) != 0 {
		t.Errorf("expected no leftover centerlines, got %d", len(result.Centerlines))
	}
	if len(result.Footprints[0]) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(result.Footprints[0]))
	}
}

func TestImportDXF_MixedContent(t *testing.T) {
	footprint := model.Outline{
		{X: 0, Y: 0}, {X: 8000, Y: 0}, {X: 8000, Y: 6000}, {X: 0, Y: 6000},
	}
	lines := []Centerline{
		{Start: model.Point2D{X: 100, Y: 100}, End: model.Point2D{X: 100, Y: 5900}},
	}
	path := writeTestDXF(t, footprint, lines)

	result := ImportDXF(path)

	if len(result.Footprints) != 1 {
		t.Errorf("expected 1 footprint, got %d", len(result.Footprints))
	}
	if len(result.Centerlines) != 1 {
		t.Errorf("expected 1 centerline, got %d", len(result.Centerlines))
	}
}

func TestImportDXF_MissingFile(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}

func TestWallsFromCenterlines(t *testing.T) {
	lines := []Centerline{
		{Start: model.Point2D{X: 0, Y: 0}, End: model.Point2D{X: 5000, Y: 0}},
		{Start: model.Point2D{X: 5000, Y: 0}, End: model.Point2D{X: 5000, Y: 4000}},
	}
	settings := model.DefaultSettings()

	walls := WallsFromCenterlines(lines, settings)

	if len(walls) != 2 {
		t.Fatalf("expected 2 walls, got %d", len(walls))
	}
	if walls[0].Thickness != settings.DefaultWallThickness {
		t.Errorf("expected thickness %f, got %f", settings.DefaultWallThickness, walls[0].Thickness)
	}
	if walls[0].Height != settings.DefaultWallHeight {
		t.Errorf("expected height %f, got %f", settings.DefaultWallHeight, walls[0].Height)
	}
	if walls[0].Label != "Wall 1" || walls[1].Label != "Wall 2" {
		t.Errorf("unexpected labels: %q, %q", walls[0].Label, walls[1].Label)
	}
	if walls[0].ID == walls[1].ID {
		t.Error("walls must get distinct ids")
	}
}

func TestChainSegments_OpenChainStaysLeftover(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 1000, Y: 0}},
		{start: model.Point2D{X: 1000, Y: 0}, end: model.Point2D{X: 1000, Y: 1000}},
	}
	outlines, leftovers := chainSegments(segs, dxfChainTol)

	if len(outlines) != 0 {
		t.Errorf("expected no closed outlines, got %d", len(outlines))
	}
	if len(leftovers) != 2 {
		t.Errorf("expected 2 leftover segments, got %d", len(leftovers))
	}
}

func TestChainSegments_ReversedSegmentStillChains(t *testing.T) {
	// The second segment runs backwards; chaining must flip it.
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 1000, Y: 0}},
		{start: model.Point2D{X: 1000, Y: 1000}, end: model.Point2D{X: 1000, Y: 0}},
		{start: model.Point2D{X: 1000, Y: 1000}, end: model.Point2D{X: 0, Y: 0}},
	}
	outlines, leftovers := chainSegments(segs, dxfChainTol)

	if len(outlines) != 1 {
		t.Fatalf("expected 1 closed outline, got %d (leftovers: %d)", len(outlines), len(leftovers))
	}
	if len(outlines[0]) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(outlines[0]))
	}
}
