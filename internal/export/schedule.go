package export

import (
	"fmt"

	"github.com/planverk/archdraft/internal/engine"
	"github.com/planverk/archdraft/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported schedule workbook.
const (
	sheetOpenings = "Openings"
	sheetStairs   = "Stairs"
	sheetRoofs    = "Roofs"
	sheetTakeoff  = "Takeoff"
)

// ExportSchedule writes an XLSX workbook with a door/window schedule, stair
// and roof summaries, and the quantity takeoff.
func ExportSchedule(path string, project model.Project, plan engine.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetOpenings); err != nil {
		return fmt.Errorf("failed to name openings sheet: %w", err)
	}
	if err := writeOpeningsSheet(f, project); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetStairs); err != nil {
		return fmt.Errorf("failed to add stairs sheet: %w", err)
	}
	if err := writeStairsSheet(f, plan); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetRoofs); err != nil {
		return fmt.Errorf("failed to add roofs sheet: %w", err)
	}
	if err := writeRoofsSheet(f, plan); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetTakeoff); err != nil {
		return fmt.Errorf("failed to add takeoff sheet: %w", err)
	}
	if err := writeTakeoffSheet(f, plan, project.Settings); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

// setRow writes a row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// writeOpeningsSheet writes the door/window schedule.
func writeOpeningsSheet(f *excelize.File, project model.Project) error {
	header := []interface{}{"Wall", "Opening ID", "Kind", "Position", "Width (mm)", "Height (mm)", "Sill (mm)"}
	if err := setRow(f, sheetOpenings, 1, header); err != nil {
		return fmt.Errorf("failed to write openings header: %w", err)
	}

	row := 2
	for _, wall := range project.Walls {
		for _, op := range wall.Openings {
			values := []interface{}{
				wall.Label, op.ID, string(op.Kind), op.Position, op.Width, op.Height, op.SillHeight,
			}
			if err := setRow(f, sheetOpenings, row, values); err != nil {
				return fmt.Errorf("failed to write opening %s: %w", op.ID, err)
			}
			row++
		}
	}
	return f.SetColWidth(sheetOpenings, "A", "G", 14)
}

// writeStairsSheet writes one row per flight with its derived dimensions.
func writeStairsSheet(f *excelize.File, plan engine.Plan) error {
	header := []interface{}{"ID", "Label", "Rise (mm)", "Run (mm)", "Steps", "Riser (mm)", "Tread (mm)", "Slope (deg)", "Passes Code", "Code Issues"}
	if err := setRow(f, sheetStairs, 1, header); err != nil {
		return fmt.Errorf("failed to write stairs header: %w", err)
	}

	for i, sp := range plan.Stairs {
		c := sp.Calculation
		issues := ""
		for j, issue := range c.CodeIssues {
			if j > 0 {
				issues += "; "
			}
			issues += issue
		}
		values := []interface{}{
			sp.Stairs.ID, sp.Stairs.Label, c.TotalRise, c.TotalRun, c.StairCount,
			c.RiserHeight, c.TreadDepth, c.Slope, c.PassesCode, issues,
		}
		if err := setRow(f, sheetStairs, i+2, values); err != nil {
			return fmt.Errorf("failed to write stairs row: %w", err)
		}
	}
	return f.SetColWidth(sheetStairs, "A", "J", 14)
}

// writeRoofsSheet writes one row per roof with its synthesized geometry.
func writeRoofsSheet(f *excelize.File, plan engine.Plan) error {
	header := []interface{}{"ID", "Label", "Type", "Slope (deg)", "Overhang (mm)", "Faces", "Ridge (mm)", "Area (sq m)", "Volume (cu m)"}
	if err := setRow(f, sheetRoofs, 1, header); err != nil {
		return fmt.Errorf("failed to write roofs header: %w", err)
	}

	for i, rp := range plan.Roofs {
		c := rp.Calculation
		values := []interface{}{
			rp.Roof.ID, rp.Roof.Label, string(rp.Roof.RoofType), rp.Roof.SlopeAngle,
			rp.Roof.Overhang, len(c.Faces), c.RidgeHeight, c.Area / 1e6, c.Volume / 1e9,
		}
		if err := setRow(f, sheetRoofs, i+2, values); err != nil {
			return fmt.Errorf("failed to write roof row: %w", err)
		}
	}
	return f.SetColWidth(sheetRoofs, "A", "I", 14)
}

// writeTakeoffSheet writes the quantity takeoff as key/value rows.
func writeTakeoffSheet(f *excelize.File, plan engine.Plan, settings model.DraftSettings) error {
	t := engine.CalculateTakeoff(plan, settings)
	rows := [][]interface{}{
		{"Gross wall area (sq m)", t.WallGrossArea / 1e6},
		{"Opening area (sq m)", t.OpeningArea / 1e6},
		{"Net wall area (sq m)", t.WallNetArea / 1e6},
		{"Doors", t.DoorCount},
		{"Windows", t.WindowCount},
		{"Stair treads", t.StepCount},
		{"Roof area (sq m)", t.RoofArea / 1e6},
		{"Roof volume (cu m)", t.RoofVolume / 1e9},
		{"Waste percent", t.WastePercent},
		{"Estimated cost", t.EstimatedCost},
	}
	for i, values := range rows {
		if err := setRow(f, sheetTakeoff, i+1, values); err != nil {
			return fmt.Errorf("failed to write takeoff row: %w", err)
		}
	}
	return f.SetColWidth(sheetTakeoff, "A", "B", 24)
}
