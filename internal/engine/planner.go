package engine

import (
	"fmt"

	"github.com/planverk/archdraft/internal/model"
)

// Planner runs the generators over a whole project and aggregates the plan
// geometry the export consumers work from.
type Planner struct {
	Settings model.DraftSettings
}

func New(settings model.DraftSettings) *Planner {
	return &Planner{Settings: settings}
}

// WallPlan holds one wall's cut geometry.
type WallPlan struct {
	Wall     model.Wall      `json:"wall"`
	Cut      model.CutResult `json:"cut"`
	Segments []model.Outline `json:"segments"`
}

// StairPlan holds one flight's derived dimensions and geometry.
type StairPlan struct {
	Stairs      model.Stairs           `json:"stairs"`
	Calculation model.StairCalculation `json:"calculation"`
	Steps       []model.StairStep      `json:"steps"`
	Outline     string                 `json:"outline"`
}

// RoofPlan holds one roof's synthesized geometry.
type RoofPlan struct {
	Roof        model.Roof            `json:"roof"`
	Calculation model.RoofCalculation `json:"calculation"`
	Outline     string                `json:"outline"`
}

// Plan is the aggregated geometry for a project. Per-element failures are
// collected in Issues; they never abort the remaining elements.
type Plan struct {
	Walls  []WallPlan  `json:"walls"`
	Stairs []StairPlan `json:"stairs"`
	Roofs  []RoofPlan  `json:"roofs"`
	Issues []string    `json:"issues,omitempty"`
}

// GeneratePlan computes cut, stair, and roof geometry for every element in
// the project.
func (pl *Planner) GeneratePlan(p model.Project) Plan {
	plan := Plan{}

	for _, wall := range p.Walls {
		cutter := NewWallCutter(wall)
		cut := cutter.Cut()
		if !cut.Success {
			plan.Issues = append(plan.Issues, fmt.Sprintf("wall %s: %s", wall.ID, cut.Error))
		}
		plan.Walls = append(plan.Walls, WallPlan{
			Wall:     wall,
			Cut:      cut,
			Segments: cutter.WallSegments(),
		})
	}

	for _, s := range p.Stairs {
		sp := pl.planStairs(s)
		if v := ValidateStairs(sp.Stairs); !v.Valid {
			for _, e := range v.Errors {
				plan.Issues = append(plan.Issues, fmt.Sprintf("stairs %s: %s", s.ID, e))
			}
		}
		plan.Stairs = append(plan.Stairs, sp)
	}

	for _, r := range p.Roofs {
		if v := ValidateRoof(r); !v.Valid {
			for _, e := range v.Errors {
				plan.Issues = append(plan.Issues, fmt.Sprintf("roof %s: %s", r.ID, e))
			}
		}
		plan.Roofs = append(plan.Roofs, RoofPlan{
			Roof:        r,
			Calculation: GenerateRoof(r),
			Outline:     GenerateRoofOutline(r),
		})
	}

	return plan
}

// planStairs fills in a flight's missing derived fields from the settings
// defaults before generating its geometry.
func (pl *Planner) planStairs(s model.Stairs) StairPlan {
	var calc model.StairCalculation
	if s.TotalRun > 0 {
		calc = CalculateFromRun(s.TotalRise, s.TotalRun, s.StairCount)
	} else {
		calc = CalculateOptimalDimensions(s.TotalRise, pl.Settings.TargetTreadDepth, s.StairCount)
	}

	s.StairCount = calc.StairCount
	s.RiserHeight = calc.RiserHeight
	s.TreadDepth = calc.TreadDepth
	s.TotalRun = calc.TotalRun
	if s.StairWidth <= 0 {
		s.StairWidth = pl.Settings.DefaultStairWidth
	}
	if s.LandingDepth <= 0 {
		s.LandingDepth = pl.Settings.LandingDepth
	}
	if len(s.PathPoints) < 2 {
		s.PathPoints = pl.defaultPath(s)
	}

	return StairPlan{
		Stairs:      s,
		Calculation: calc,
		Steps:       placeSteps(s.PathPoints, calc, s.StairWidth),
		Outline:     GenerateStairOutline(s.PathPoints, s.StairWidth),
	}
}

// defaultPath builds a centerline at the origin along +X for flights created
// without explicit path points.
func (pl *Planner) defaultPath(s model.Stairs) []model.Point2D {
	origin := model.Point2D{}
	direction := model.Point2D{X: 1}
	switch s.PathType {
	case model.PathLShaped:
		return GenerateLShapedPath(origin, direction, s.TotalRun/2, s.TotalRun/2, s.LandingDepth, true)
	case model.PathUShaped:
		return GenerateUShapedPath(origin, direction, s.TotalRun/2, s.StairWidth)
	default:
		return GenerateStraightPath(origin, direction, s.TotalRun)
	}
}
