// Package geom is the shared 2D geometry kernel used by the wall, stair, and
// roof generators: line intersection, polygon area and centroid via the
// shoelace formula, point projection, and SVG-style path emission.
package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/planverk/archdraft/internal/model"
)

// Tolerances used across the generators. They are exported so callers can
// reference the exact values the engine decides with.
const (
	// PositionTol is the slack allowed on fractional along-wall positions,
	// so 0 and 1 survive floating-point drift.
	PositionTol = 0.01
	// WallDistanceTol is the default perpendicular distance in mm within
	// which a point still counts as lying on a wall.
	WallDistanceTol = 50.0
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b model.Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b model.Point2D, t float64) model.Point2D {
	return model.Point2D{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Add returns a + b.
func Add(a, b model.Point2D) model.Point2D {
	return model.Point2D{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func Sub(a, b model.Point2D) model.Point2D {
	return model.Point2D{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns p scaled by s.
func Scale(p model.Point2D, s float64) model.Point2D {
	return model.Point2D{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of a and b.
func Dot(a, b model.Point2D) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of the cross product of a and b.
func Cross(a, b model.Point2D) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Normalize returns the unit vector of p and its original length.
// The zero vector normalizes to itself with length 0.
func Normalize(p model.Point2D) (model.Point2D, float64) {
	l := math.Sqrt(p.X*p.X + p.Y*p.Y)
	if l < 1e-12 {
		return model.Point2D{}, 0
	}
	return model.Point2D{X: p.X / l, Y: p.Y / l}, l
}

// Perpendicular returns p rotated 90 degrees counter-clockwise.
func Perpendicular(p model.Point2D) model.Point2D {
	return model.Point2D{X: -p.Y, Y: p.X}
}

// LineIntersection returns the intersection of the infinite lines through
// (p1, p2) and (p3, p4). ok is false when the lines are parallel.
func LineIntersection(p1, p2, p3, p4 model.Point2D) (model.Point2D, bool) {
	d1 := Sub(p2, p1)
	d2 := Sub(p4, p3)
	denom := Cross(d1, d2)
	if math.Abs(denom) < 1e-9 {
		return model.Point2D{}, false
	}
	t := Cross(Sub(p3, p1), d2) / denom
	return Add(p1, Scale(d1, t)), true
}

// ProjectOnSegment projects p onto the segment (a, b) and returns the
// fractional position t along the segment (unclamped) and the perpendicular
// distance from the segment's infinite line.
func ProjectOnSegment(p, a, b model.Point2D) (t, dist float64) {
	dir, length := Normalize(Sub(b, a))
	if length == 0 {
		return 0, Distance(p, a)
	}
	rel := Sub(p, a)
	t = Dot(rel, dir) / length
	dist = math.Abs(Cross(dir, rel))
	return t, dist
}

// SignedArea computes the signed area of a simple polygon via the shoelace
// formula. Positive for counter-clockwise winding. A closing point, if
// present, is ignored.
func SignedArea(o model.Outline) float64 {
	pts := o.Ring()
	n := len(pts)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X * pts[j].Y
		area -= pts[j].X * pts[i].Y
	}
	return area / 2
}

// PolygonArea returns the absolute area of a simple polygon.
func PolygonArea(o model.Outline) float64 {
	return math.Abs(SignedArea(o))
}

// Centroid returns the area-weighted centroid of a simple polygon. For
// degenerate polygons with ~zero signed area it falls back to the arithmetic
// mean of the vertices.
func Centroid(o model.Outline) model.Point2D {
	pts := o.Ring()
	n := len(pts)
	if n == 0 {
		return model.Point2D{}
	}

	signed := SignedArea(pts)
	if math.Abs(signed) < 1e-9 {
		var mean model.Point2D
		for _, p := range pts {
			mean.X += p.X
			mean.Y += p.Y
		}
		mean.X /= float64(n)
		mean.Y /= float64(n)
		return mean
	}

	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
		cx += (pts[i].X + pts[j].X) * cross
		cy += (pts[i].Y + pts[j].Y) * cross
	}
	f := 1 / (6 * signed)
	return model.Point2D{X: cx * f, Y: cy * f}
}

// Path emits a closed SVG-style path for the given points with grammar
// "M x0 y0 L x1 y1 ... Z". Coordinates are rounded to one decimal place.
// The generators share this single formatting convention.
func Path(points []model.Point2D) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&b, "M %s %s", coord(p.X), coord(p.Y))
		} else {
			fmt.Fprintf(&b, " L %s %s", coord(p.X), coord(p.Y))
		}
	}
	b.WriteString(" Z")
	return b.String()
}

// JoinPaths concatenates multiple path strings with single spaces, the
// convention for multi-segment results such as remaining wall segments.
func JoinPaths(paths []string) string {
	return strings.Join(paths, " ")
}

// coord formats a coordinate to one decimal place, normalizing negative zero.
func coord(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0
	}
	return fmt.Sprintf("%.1f", r)
}
