// Package export writes generated plan geometry to the file formats the
// drafting engine's consumers expect: layered DXF, PDF plan sheets, XLSX
// element schedules, and QR-coded element labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/planverk/archdraft/internal/engine"
	"github.com/planverk/archdraft/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for the plan: a floor-plan page with
// walls, stairs, and roof outlines scaled to fit, followed by a summary page
// with the quantity takeoff.
func ExportPDF(path string, project model.Project, plan engine.Plan) error {
	if len(plan.Walls) == 0 && len(plan.Stairs) == 0 && len(plan.Roofs) == 0 {
		return fmt.Errorf("no plan geometry to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, project, plan)

	pdf.AddPage()
	renderSummaryPage(pdf, project, plan)

	return pdf.OutputFileAndClose(path)
}

// planBounds returns the bounding box of all plan geometry in mm.
func planBounds(plan engine.Plan) (min, max model.Point2D) {
	min = model.Point2D{X: math.Inf(1), Y: math.Inf(1)}
	max = model.Point2D{X: math.Inf(-1), Y: math.Inf(-1)}

	grow := func(p model.Point2D) {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}

	for _, wp := range plan.Walls {
		for _, seg := range wp.Segments {
			for _, p := range seg {
				grow(p)
			}
		}
	}
	for _, sp := range plan.Stairs {
		for _, st := range sp.Steps {
			grow(st.TreadStart)
			grow(st.TreadEnd)
		}
	}
	for _, rp := range plan.Roofs {
		for _, p := range rp.Roof.BasePoints {
			grow(p)
		}
	}

	if math.IsInf(min.X, 1) {
		return model.Point2D{}, model.Point2D{X: 1, Y: 1}
	}
	return min, max
}

// renderPlanPage draws the scaled floor plan on the current page.
func renderPlanPage(pdf *fpdf.Fpdf, project model.Project, plan engine.Plan) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Floor Plan: %s", project.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	min, max := planBounds(plan)
	spanX := max.X - min.X
	spanY := max.Y - min.Y
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/spanX, drawHeight/spanY)

	offsetX := marginLeft + (drawWidth-spanX*scale)/2
	offsetY := drawAreaTop + (drawHeight-spanY*scale)/2

	// Plan Y grows up, page Y grows down
	toPage := func(p model.Point2D) (float64, float64) {
		return offsetX + (p.X-min.X)*scale, offsetY + (max.Y-p.Y)*scale
	}

	// Roof outlines behind everything else
	pdf.SetDrawColor(200, 60, 60)
	pdf.SetLineWidth(0.2)
	for _, rp := range plan.Roofs {
		drawPolygon(pdf, rp.Roof.BasePoints.Ring(), toPage, "D")
	}

	// Wall segments
	pdf.SetFillColor(90, 90, 90)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	for _, wp := range plan.Walls {
		for _, seg := range wp.Segments {
			drawPolygon(pdf, seg, toPage, "FD")
		}
	}

	// Stair treads
	pdf.SetDrawColor(40, 120, 40)
	pdf.SetLineWidth(0.25)
	for _, sp := range plan.Stairs {
		for _, st := range sp.Steps {
			x1, y1 := toPage(st.TreadStart)
			x2, y2 := toPage(st.TreadEnd)
			pdf.Line(x1, y1, x2, y2)
		}
	}

	// Scale annotation
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	note := fmt.Sprintf("Extent: %.0f x %.0f mm", spanX, spanY)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pdf.GetStringWidth(note), 4, note, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawPolygon draws a closed polygon using the given plan-to-page transform.
func drawPolygon(pdf *fpdf.Fpdf, pts model.Outline, toPage func(model.Point2D) (float64, float64), style string) {
	if len(pts) < 3 {
		return
	}
	points := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		x, y := toPage(p)
		points[i] = fpdf.PointType{X: x, Y: y}
	}
	pdf.Polygon(points, style)
}

// renderSummaryPage draws element counts and the quantity takeoff.
func renderSummaryPage(pdf *fpdf.Fpdf, project model.Project, plan engine.Plan) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Summary", "", 0, "L", false, 0, "")

	takeoff := engine.CalculateTakeoff(plan, project.Settings)

	lines := []string{
		fmt.Sprintf("Walls: %d | Stairs: %d | Roofs: %d", len(plan.Walls), len(plan.Stairs), len(plan.Roofs)),
		fmt.Sprintf("Doors: %d | Windows: %d | Treads: %d", takeoff.DoorCount, takeoff.WindowCount, takeoff.StepCount),
		fmt.Sprintf("Net wall area: %.2f sq m", takeoff.WallNetArea/1e6),
		fmt.Sprintf("Roof area: %.2f sq m | Roof volume: %.2f cu m", takeoff.RoofArea/1e6, takeoff.RoofVolume/1e9),
	}
	if takeoff.EstimatedCost > 0 {
		lines = append(lines, fmt.Sprintf("Estimated material cost (incl. %.0f%% waste): %.2f", takeoff.WastePercent, takeoff.EstimatedCost))
	}

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight + 4
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")
		y += 6
	}

	if len(plan.Issues) > 0 {
		y += 4
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, "Issues", "", 0, "L", false, 0, "")
		y += 6
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(180, 0, 0)
		for _, issue := range plan.Issues {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight, 4.5, issue, "", 0, "L", false, 0, "")
			y += 5
		}
		pdf.SetTextColor(0, 0, 0)
	}
}
