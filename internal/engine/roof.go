package engine

import (
	"fmt"
	"math"

	"github.com/planverk/archdraft/internal/geom"
	"github.com/planverk/archdraft/internal/model"
)

// RidgeHeight returns the peak elevation of a symmetric sloped roof over the
// given perpendicular span: (span/2) * tan(slopeAngle).
func RidgeHeight(span, slopeAngle float64) float64 {
	return span / 2 * math.Tan(slopeAngle*math.Pi/180)
}

// GenerateRoof synthesizes roof faces for the given roof record, dispatching
// on its type. A footprint with fewer than 3 points produces a zeroed result
// rather than an error.
func GenerateRoof(roof model.Roof) model.RoofCalculation {
	pts := roof.BasePoints.Ring()
	if len(pts) < 3 {
		return model.RoofCalculation{}
	}

	switch roof.RoofType {
	case model.RoofHip:
		return generateHipRoof(pts, roof.SlopeAngle)
	case model.RoofShed:
		return generateShedRoof(pts, roof.SlopeAngle)
	case model.RoofFlat:
		return generateFlatRoof(pts, roof.Thickness)
	default:
		return generateGableRoof(pts, roof.SlopeAngle)
	}
}

// generateGableRoof treats the longest footprint edge as the ridge direction
// and emits two rectangular sloped faces that meet at the ridge line, each
// spanning half the footprint's perpendicular extent.
func generateGableRoof(pts model.Outline, slopeAngle float64) model.RoofCalculation {
	n := len(pts)

	longest := 0
	longestLen := 0.0
	for i := 0; i < n; i++ {
		l := geom.Distance(pts[i], pts[(i+1)%n])
		if l > longestLen {
			longestLen = l
			longest = i
		}
	}

	origin := pts[longest]
	u, _ := geom.Normalize(geom.Sub(pts[(longest+1)%n], origin))
	v := geom.Perpendicular(u)

	uMin, uMax := math.Inf(1), math.Inf(-1)
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		rel := geom.Sub(p, origin)
		a, b := geom.Dot(rel, u), geom.Dot(rel, v)
		uMin, uMax = math.Min(uMin, a), math.Max(uMax, a)
		vMin, vMax = math.Min(vMin, b), math.Max(vMax, b)
	}

	span := vMax - vMin
	ridge := RidgeHeight(span, slopeAngle)
	vMid := (vMin + vMax) / 2
	slope := math.Tan(slopeAngle * math.Pi / 180)
	cos := math.Cos(slopeAngle * math.Pi / 180)

	world := func(a, b, z float64) model.Point3D {
		p := geom.Add(origin, geom.Add(geom.Scale(u, a), geom.Scale(v, b)))
		return model.Point3D{X: p.X, Y: p.Y, Z: z}
	}

	faces := []model.RoofFace{
		{
			ID: "gable-0",
			Vertices: []model.Point3D{
				world(uMin, vMin, 0),
				world(uMax, vMin, 0),
				world(uMax, vMid, ridge),
				world(uMin, vMid, ridge),
			},
			Elevation: ridge,
			Slope:     slope,
		},
		{
			ID: "gable-1",
			Vertices: []model.Point3D{
				world(uMin, vMax, 0),
				world(uMax, vMax, 0),
				world(uMax, vMid, ridge),
				world(uMin, vMid, ridge),
			},
			Elevation: ridge,
			Slope:     slope,
		},
	}

	facePlanArea := (uMax - uMin) * span / 2
	area := 2 * facePlanArea
	if cos > 1e-9 {
		area = 2 * facePlanArea / cos
	}
	baseArea := geom.PolygonArea(pts)

	return model.RoofCalculation{
		Faces:       faces,
		RidgeHeight: ridge,
		Area:        area,
		Volume:      baseArea * ridge / 2,
	}
}

// generateHipRoof fans one triangular face per footprint edge up to the
// centroid. The ridge height comes from the average centroid-to-vertex span.
// This is a simplification: true hip/valley edges are not computed for
// irregular footprints.
func generateHipRoof(pts model.Outline, slopeAngle float64) model.RoofCalculation {
	n := len(pts)
	c := geom.Centroid(pts)

	var avgDist float64
	for _, p := range pts {
		avgDist += geom.Distance(c, p)
	}
	avgDist /= float64(n)

	ridge := RidgeHeight(avgDist*2, slopeAngle)
	slope := math.Tan(slopeAngle * math.Pi / 180)
	cos := math.Cos(slopeAngle * math.Pi / 180)
	apex := model.Point3D{X: c.X, Y: c.Y, Z: ridge}

	faces := make([]model.RoofFace, 0, n)
	var planArea float64
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		faces = append(faces, model.RoofFace{
			ID: fmt.Sprintf("hip-%d", i),
			Vertices: []model.Point3D{
				{X: a.X, Y: a.Y, Z: 0},
				{X: b.X, Y: b.Y, Z: 0},
				apex,
			},
			Elevation: ridge,
			Slope:     slope,
		})
		planArea += geom.PolygonArea(model.Outline{a, b, c})
	}

	area := planArea
	if cos > 1e-9 {
		area = planArea / cos
	}
	baseArea := geom.PolygonArea(pts)

	return model.RoofCalculation{
		Faces:       faces,
		RidgeHeight: ridge,
		Area:        area,
		Volume:      baseArea * ridge / 3,
	}
}

// generateShedRoof slopes a single face across the footprint. The slope runs
// perpendicular to the direction of the two most distant footprint points,
// and that perpendicular span is the full slope run.
func generateShedRoof(pts model.Outline, slopeAngle float64) model.RoofCalculation {
	n := len(pts)

	var pi, qi int
	maxDist := -1.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := geom.Distance(pts[i], pts[j]); d > maxDist {
				maxDist = d
				pi, qi = i, j
			}
		}
	}

	u, _ := geom.Normalize(geom.Sub(pts[qi], pts[pi]))
	v := geom.Perpendicular(u)
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		b := geom.Dot(geom.Sub(p, pts[pi]), v)
		vMin, vMax = math.Min(vMin, b), math.Max(vMax, b)
	}

	run := vMax - vMin
	ridge := run * math.Tan(slopeAngle*math.Pi/180)
	slope := math.Tan(slopeAngle * math.Pi / 180)
	cos := math.Cos(slopeAngle * math.Pi / 180)

	vertices := make([]model.Point3D, n)
	for i, p := range pts {
		vertices[i] = model.Point3D{X: p.X, Y: p.Y, Z: ridge}
	}

	baseArea := geom.PolygonArea(pts)
	area := baseArea
	if cos > 1e-9 {
		area = baseArea / cos
	}

	return model.RoofCalculation{
		Faces: []model.RoofFace{{
			ID:        "shed-0",
			Vertices:  vertices,
			Elevation: ridge,
			Slope:     slope,
		}},
		RidgeHeight: ridge,
		Area:        area,
		Volume:      baseArea * ridge / 2,
	}
}

// generateFlatRoof places the footprint as a single face at the fixed nominal
// height. The area is the plan area with no slope correction; the volume is
// the slab volume from the roof thickness.
func generateFlatRoof(pts model.Outline, thickness float64) model.RoofCalculation {
	vertices := make([]model.Point3D, len(pts))
	for i, p := range pts {
		vertices[i] = model.Point3D{X: p.X, Y: p.Y, Z: model.FlatRoofHeight}
	}
	baseArea := geom.PolygonArea(pts)

	return model.RoofCalculation{
		Faces: []model.RoofFace{{
			ID:        "flat-0",
			Vertices:  vertices,
			Elevation: model.FlatRoofHeight,
			Slope:     0,
		}},
		RidgeHeight: model.FlatRoofHeight,
		Area:        baseArea,
		Volume:      baseArea * thickness,
	}
}

// GenerateRoofOutline returns the plan outline including overhang as a
// rounded SVG path. Each footprint edge is pushed outward by the overhang
// along its own normal, and neighboring offset edges are intersected to form
// true mitered corners rather than naive perpendicular offsets.
func GenerateRoofOutline(roof model.Roof) string {
	pts := roof.BasePoints.Ring()
	n := len(pts)
	if n < 3 {
		return ""
	}
	if roof.Overhang <= 0 {
		return geom.Path(pts)
	}

	// Outward is to the right of each edge for CCW footprints.
	outwardSign := -1.0
	if geom.SignedArea(pts) < 0 {
		outwardSign = 1.0
	}

	type offsetEdge struct {
		a, b model.Point2D
	}
	edges := make([]offsetEdge, n)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		dir, _ := geom.Normalize(geom.Sub(b, a))
		normal := geom.Scale(geom.Perpendicular(dir), outwardSign*roof.Overhang)
		edges[i] = offsetEdge{a: geom.Add(a, normal), b: geom.Add(b, normal)}
	}

	corners := make(model.Outline, 0, n)
	for i := 0; i < n; i++ {
		prev := edges[(i+n-1)%n]
		cur := edges[i]
		if p, ok := geom.LineIntersection(prev.a, prev.b, cur.a, cur.b); ok {
			corners = append(corners, p)
		} else {
			// Collinear neighbors share the offset line; keep the edge start.
			corners = append(corners, cur.a)
		}
	}
	return geom.Path(corners)
}

// ValidateRoof checks a roof's structural constraints (errors) and flags
// questionable but generatable configurations (warnings).
func ValidateRoof(roof model.Roof) model.ValidationResult {
	var errs, warns []string

	if len(roof.BasePoints.Ring()) < 3 {
		errs = append(errs, "roof footprint needs at least 3 base points")
	}
	if roof.SlopeAngle < 0 {
		errs = append(errs, fmt.Sprintf("slope angle %.1f must not be negative", roof.SlopeAngle))
	}
	if roof.Overhang < 0 {
		errs = append(errs, fmt.Sprintf("overhang %.1fmm must not be negative", roof.Overhang))
	}

	if len(roof.BasePoints) >= 3 && !roof.BasePoints.IsClosed() {
		warns = append(warns, "footprint wire is not closed; it will be closed implicitly")
	}
	if area := geom.PolygonArea(roof.BasePoints); len(roof.BasePoints.Ring()) >= 3 && area < 1000 {
		warns = append(warns, fmt.Sprintf("footprint area %.0f sq mm is implausibly small", area))
	}
	if roof.SlopeAngle > 60 {
		warns = append(warns, fmt.Sprintf("slope angle %.1f is unusually steep", roof.SlopeAngle))
	}
	if roof.RoofType == model.RoofFlat && roof.SlopeAngle > 5 {
		warns = append(warns, fmt.Sprintf("flat roof with slope angle %.1f should be a shed roof", roof.SlopeAngle))
	}
	if roof.Overhang > 1000 {
		warns = append(warns, fmt.Sprintf("overhang %.0fmm is unusually large", roof.Overhang))
	}

	return model.ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}
