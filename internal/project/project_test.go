package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planverk/archdraft/internal/model"
)

func testProject() model.Project {
	p := model.NewProject()
	p.Name = "Round Trip House"

	wall := model.NewWall("North", model.Point2D{X: 0, Y: 0}, model.Point2D{X: 5000, Y: 0}, 200, 2700)
	wall.Openings = append(wall.Openings, model.NewOpening(model.OpeningDoor, 0.5, 900, 2100, 0))
	p.Walls = append(p.Walls, wall)

	p.Stairs = append(p.Stairs, model.Stairs{
		ID: "s1", Label: "Main", TotalRise: 2700, PathType: model.PathLShaped, StairWidth: 900,
	})
	p.Roofs = append(p.Roofs, model.Roof{
		ID: "r1", Label: "Roof", RoofType: model.RoofHip, SlopeAngle: 25, Overhang: 300,
		BasePoints: model.Outline{{X: 0, Y: 0}, {X: 8000, Y: 0}, {X: 8000, Y: 6000}, {X: 0, Y: 6000}},
	})
	return p
}

func TestSaveAndLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "house.json")

	original := testProject()
	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != original.Name {
		t.Errorf("expected name %q, got %q", original.Name, loaded.Name)
	}
	if len(loaded.Walls) != 1 || len(loaded.Stairs) != 1 || len(loaded.Roofs) != 1 {
		t.Fatalf("element counts changed: %d/%d/%d",
			len(loaded.Walls), len(loaded.Stairs), len(loaded.Roofs))
	}
	if loaded.Walls[0].ID != original.Walls[0].ID {
		t.Error("wall id changed across save/load")
	}
	if len(loaded.Walls[0].Openings) != 1 {
		t.Fatal("opening lost across save/load")
	}
	if loaded.Walls[0].Openings[0].Width != 900 {
		t.Errorf("opening width changed: %f", loaded.Walls[0].Openings[0].Width)
	}
	if loaded.Stairs[0].PathType != model.PathLShaped {
		t.Errorf("stair path type changed: %s", loaded.Stairs[0].PathType)
	}
	if loaded.Roofs[0].RoofType != model.RoofHip {
		t.Errorf("roof type changed: %s", loaded.Roofs[0].RoofType)
	}
	if loaded.Settings.DefaultWallThickness != original.Settings.DefaultWallThickness {
		t.Error("settings changed across save/load")
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "house.json")

	if err := Save(path, testProject()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadGuardsNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.json")
	if err := os.WriteFile(path, []byte(`{"name":"Minimal"}`), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Walls == nil || p.Stairs == nil || p.Roofs == nil {
		t.Error("expected non-nil element slices for minimal file")
	}
}
