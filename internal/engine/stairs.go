package engine

import (
	"fmt"
	"math"

	"github.com/planverk/archdraft/internal/geom"
	"github.com/planverk/archdraft/internal/model"
)

// DefaultTargetTreadDepth is the tread depth aimed for when the caller does
// not specify one.
const DefaultTargetTreadDepth = 280.0

// defaultLandingDepth is the landing leg length inserted by the L- and
// U-shaped path generators when the caller passes 0.
const defaultLandingDepth = 1200.0

// CalculateOptimalDimensions derives riser/tread dimensions for a flight with
// the given total rise. targetTreadDepth of 0 means DefaultTargetTreadDepth;
// maxStairs of 0 means unlimited. Out-of-code dimensions are reported in
// CodeIssues but never rejected; this function does not fail.
func CalculateOptimalDimensions(totalRise, targetTreadDepth float64, maxStairs int) model.StairCalculation {
	code := model.DefaultBuildingCode()
	if targetTreadDepth <= 0 {
		targetTreadDepth = DefaultTargetTreadDepth
	}

	stairCount := int(math.Ceil(totalRise / code.MaxRiser))
	if maxStairs > 0 && stairCount > maxStairs {
		stairCount = maxStairs
	}
	if stairCount < 2 {
		stairCount = 2
	}

	riserHeight := totalRise / float64(stairCount)

	treadDepth := targetTreadDepth
	if treadDepth < code.MinTread {
		treadDepth = code.MinTread
	}

	totalRun := treadDepth * float64(stairCount-1)
	slope := math.Atan2(riserHeight, treadDepth) * 180 / math.Pi

	var issues []string
	if riserHeight < code.MinRiser {
		issues = append(issues, fmt.Sprintf("riser height %.1fmm is below the minimum %.0fmm", riserHeight, code.MinRiser))
	}
	if riserHeight > code.MaxRiser {
		issues = append(issues, fmt.Sprintf("riser height %.1fmm exceeds the maximum %.0fmm", riserHeight, code.MaxRiser))
	}
	if targetTreadDepth < code.MinTread {
		issues = append(issues, fmt.Sprintf("tread depth %.1fmm is below the minimum %.0fmm, raised to it", targetTreadDepth, code.MinTread))
	}
	if treadDepth > code.MaxTread {
		issues = append(issues, fmt.Sprintf("tread depth %.1fmm exceeds the maximum %.0fmm", treadDepth, code.MaxTread))
	}

	return model.StairCalculation{
		StairCount:  stairCount,
		RiserHeight: riserHeight,
		TreadDepth:  treadDepth,
		TotalRise:   totalRise,
		TotalRun:    totalRun,
		Slope:       slope,
		PassesCode:  len(issues) == 0,
		CodeIssues:  issues,
	}
}

// CalculateFromRun derives a flight that spans the given total run. The stair
// count comes from maxStairs when provided, otherwise from the riser-based
// estimate, and is never below 2. The tread depth implied by the run is then
// fed through CalculateOptimalDimensions for the final record.
func CalculateFromRun(totalRise, totalRun float64, maxStairs int) model.StairCalculation {
	code := model.DefaultBuildingCode()

	stairCount := maxStairs
	if stairCount <= 0 {
		stairCount = int(math.Ceil(totalRise / code.MaxRiser))
	}
	if stairCount < 2 {
		stairCount = 2
	}

	treadDepth := totalRun / float64(stairCount-1)
	return CalculateOptimalDimensions(totalRise, treadDepth, stairCount)
}

// GenerateSteps places one tread per stair along the path centerline. Tread
// centroids are spaced totalRun/(stairCount-1) apart along the cumulative
// path length, switching path segments at their boundaries; TreadStart and
// TreadEnd are the centroid offset half the stair width to either side,
// perpendicular to the local segment direction.
func GenerateSteps(pathPoints []model.Point2D, totalRise, stairWidth float64) []model.StairStep {
	if totalRise <= 0 {
		return nil
	}
	return placeSteps(pathPoints, CalculateOptimalDimensions(totalRise, 0, 0), stairWidth)
}

// placeSteps walks the path with the tread spacing of an already-derived
// calculation, so stored dimensions and tread geometry always agree.
func placeSteps(pathPoints []model.Point2D, calc model.StairCalculation, stairWidth float64) []model.StairStep {
	if len(pathPoints) < 2 || calc.StairCount < 2 || calc.TotalRise <= 0 {
		return nil
	}

	spacing := calc.TotalRun / float64(calc.StairCount-1)

	steps := make([]model.StairStep, 0, calc.StairCount)
	for i := 0; i < calc.StairCount; i++ {
		center, dir := walkPath(pathPoints, float64(i)*spacing)
		offset := geom.Scale(geom.Perpendicular(dir), stairWidth/2)
		steps = append(steps, model.StairStep{
			Index:          i,
			TreadStart:     geom.Add(center, offset),
			TreadEnd:       geom.Sub(center, offset),
			CumulativeRise: float64(i+1) * calc.RiserHeight,
		})
	}
	return steps
}

// walkPath returns the point at the given distance along the polyline plus
// the local segment direction. Distances beyond the path clamp to its end.
func walkPath(pts []model.Point2D, dist float64) (model.Point2D, model.Point2D) {
	remaining := dist
	for i := 0; i < len(pts)-1; i++ {
		dir, segLen := geom.Normalize(geom.Sub(pts[i+1], pts[i]))
		if segLen == 0 {
			continue
		}
		if remaining <= segLen || i == len(pts)-2 {
			if remaining > segLen {
				remaining = segLen
			}
			return geom.Add(pts[i], geom.Scale(dir, remaining)), dir
		}
		remaining -= segLen
	}
	last := pts[len(pts)-1]
	dir, _ := geom.Normalize(geom.Sub(last, pts[len(pts)-2]))
	return last, dir
}

// GenerateStraightPath builds a two-point centerline from start along
// direction for the given total run.
func GenerateStraightPath(start, direction model.Point2D, totalRun float64) []model.Point2D {
	dir, _ := geom.Normalize(direction)
	return []model.Point2D{start, geom.Add(start, geom.Scale(dir, totalRun))}
}

// GenerateLShapedPath builds a centerline that runs firstRun along direction,
// turns 90 degrees (left when turnLeft, otherwise right) across a landing leg
// of landingDepth (0 = default 1200mm), and continues secondRun in the turned
// direction.
func GenerateLShapedPath(start, direction model.Point2D, firstRun, secondRun, landingDepth float64, turnLeft bool) []model.Point2D {
	if landingDepth <= 0 {
		landingDepth = defaultLandingDepth
	}
	dir, _ := geom.Normalize(direction)
	turn := geom.Perpendicular(dir)
	if !turnLeft {
		turn = geom.Scale(turn, -1)
	}

	p1 := geom.Add(start, geom.Scale(dir, firstRun))
	p2 := geom.Add(p1, geom.Scale(turn, landingDepth))
	p3 := geom.Add(p2, geom.Scale(turn, secondRun))
	return []model.Point2D{start, p1, p2, p3}
}

// GenerateUShapedPath builds a switchback centerline: runPerFlight along
// direction, a 180-degree landing offset across by the stair width, then a
// parallel return leg back toward the start.
func GenerateUShapedPath(start, direction model.Point2D, runPerFlight, stairWidth float64) []model.Point2D {
	dir, _ := geom.Normalize(direction)
	across := geom.Perpendicular(dir)

	p1 := geom.Add(start, geom.Scale(dir, runPerFlight))
	p2 := geom.Add(p1, geom.Scale(across, stairWidth))
	p3 := geom.Sub(p2, geom.Scale(dir, runPerFlight))
	return []model.Point2D{start, p1, p2, p3}
}

// GenerateStairOutline offsets the path centerline by half the stair width on
// both sides and closes the result: the left side is walked forward, the
// right side in reverse. The outline is emitted as a rounded SVG path.
func GenerateStairOutline(pathPoints []model.Point2D, stairWidth float64) string {
	if len(pathPoints) < 2 {
		return ""
	}

	half := stairWidth / 2
	var left, right []model.Point2D
	for i := 0; i < len(pathPoints)-1; i++ {
		dir, segLen := geom.Normalize(geom.Sub(pathPoints[i+1], pathPoints[i]))
		if segLen == 0 {
			continue
		}
		offset := geom.Scale(geom.Perpendicular(dir), half)
		left = append(left, geom.Add(pathPoints[i], offset), geom.Add(pathPoints[i+1], offset))
		right = append(right, geom.Sub(pathPoints[i], offset), geom.Sub(pathPoints[i+1], offset))
	}

	outline := append([]model.Point2D{}, left...)
	for i := len(right) - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	return geom.Path(outline)
}

// ValidateStairs checks a flight's structural constraints (errors) and its
// code compliance (warnings). Warnings never block geometry generation.
func ValidateStairs(s model.Stairs) model.ValidationResult {
	code := model.DefaultBuildingCode()
	var errs, warns []string

	if len(s.PathPoints) < 2 {
		errs = append(errs, "stair path needs at least 2 points")
	}
	if s.TotalRise <= 0 {
		errs = append(errs, fmt.Sprintf("total rise %.1fmm must be positive", s.TotalRise))
	}
	if s.TotalRun <= 0 {
		errs = append(errs, fmt.Sprintf("total run %.1fmm must be positive", s.TotalRun))
	}
	if s.StairWidth < code.MinWidth {
		errs = append(errs, fmt.Sprintf("stair width %.1fmm is below the code minimum %.0fmm", s.StairWidth, code.MinWidth))
	}

	if s.TotalRise > 0 {
		calc := CalculateOptimalDimensions(s.TotalRise, s.TreadDepth, 0)
		warns = append(warns, calc.CodeIssues...)
		if diff := s.StairCount - calc.StairCount; diff > 1 || diff < -1 {
			warns = append(warns, fmt.Sprintf("stair count %d differs from the computed optimum %d by more than 1", s.StairCount, calc.StairCount))
		}
	}

	return model.ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}
