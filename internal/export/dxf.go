package export

import (
	"fmt"

	"github.com/planverk/archdraft/internal/engine"
	"github.com/planverk/archdraft/internal/geom"
	"github.com/planverk/archdraft/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names for plan geometry.
const (
	layerWalls    = "WALLS"
	layerOpenings = "OPENINGS"
	layerStairs   = "STAIRS"
	layerRoofs    = "ROOFS"
)

// ExportDXF writes the plan geometry to a layered DXF drawing: remaining wall
// segments on WALLS, opening cut rectangles on OPENINGS, stair treads and
// outlines on STAIRS, and roof footprints with overhang outlines on ROOFS.
func ExportDXF(path string, plan engine.Plan) error {
	if len(plan.Walls) == 0 && len(plan.Stairs) == 0 && len(plan.Roofs) == 0 {
		return fmt.Errorf("no plan geometry to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerWalls, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerWalls, err)
	}
	for _, wp := range plan.Walls {
		for _, seg := range wp.Segments {
			if err := drawOutline(d, seg); err != nil {
				return fmt.Errorf("failed to draw wall %s: %w", wp.Wall.ID, err)
			}
		}
	}

	if _, err := d.AddLayer(layerOpenings, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerOpenings, err)
	}
	for _, wp := range plan.Walls {
		if !wp.Cut.Success {
			continue
		}
		for _, op := range wp.Wall.Openings {
			if err := drawOutline(d, openingOutline(wp.Wall, op)); err != nil {
				return fmt.Errorf("failed to draw opening %s: %w", op.ID, err)
			}
		}
	}

	if _, err := d.AddLayer(layerStairs, color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerStairs, err)
	}
	for _, sp := range plan.Stairs {
		for _, step := range sp.Steps {
			if _, err := d.Line(step.TreadStart.X, step.TreadStart.Y, 0,
				step.TreadEnd.X, step.TreadEnd.Y, 0); err != nil {
				return fmt.Errorf("failed to draw stair tread %d: %w", step.Index, err)
			}
		}
		for i := 0; i < len(sp.Stairs.PathPoints)-1; i++ {
			a, b := sp.Stairs.PathPoints[i], sp.Stairs.PathPoints[i+1]
			if _, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
				return fmt.Errorf("failed to draw stair path: %w", err)
			}
		}
	}

	if _, err := d.AddLayer(layerRoofs, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerRoofs, err)
	}
	for _, rp := range plan.Roofs {
		if err := drawOutline(d, rp.Roof.BasePoints.Ring()); err != nil {
			return fmt.Errorf("failed to draw roof %s: %w", rp.Roof.ID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawOutline draws a closed polygon as a LWPOLYLINE on the current layer.
func drawOutline(d *drawing.Drawing, o model.Outline) error {
	pts := o.Ring()
	if len(pts) < 2 {
		return nil
	}
	vertices := make([][]float64, len(pts))
	for i, p := range pts {
		vertices[i] = []float64{p.X, p.Y}
	}
	_, err := d.LwPolyline(true, vertices...)
	return err
}

// openingOutline returns an opening's plan rectangle on its wall.
func openingOutline(wall model.Wall, op model.WallOpening) model.Outline {
	outline := engine.NewWallCutter(wall).WallOutline()
	length := wall.Length()
	if length == 0 || len(outline) != 4 {
		return nil
	}
	lo := op.Position - op.Width/2/length
	hi := op.Position + op.Width/2/length
	return model.Outline{
		geom.Lerp(outline[0], outline[1], lo),
		geom.Lerp(outline[0], outline[1], hi),
		geom.Lerp(outline[3], outline[2], hi),
		geom.Lerp(outline[3], outline[2], lo),
	}
}
