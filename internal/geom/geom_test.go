package geom

import (
	"math"
	"testing"

	"github.com/planverk/archdraft/internal/model"
)

func TestSignedAreaRectangle(t *testing.T) {
	// CCW 5000x4000 rectangle: shoelace must be exact, no epsilon needed.
	rect := model.Outline{
		{X: 0, Y: 0}, {X: 5000, Y: 0}, {X: 5000, Y: 4000}, {X: 0, Y: 4000},
	}
	if got := SignedArea(rect); got != 20000000 {
		t.Errorf("expected signed area 20000000, got %f", got)
	}
}

func TestSignedAreaClockwiseIsNegative(t *testing.T) {
	rect := model.Outline{
		{X: 0, Y: 0}, {X: 0, Y: 4000}, {X: 5000, Y: 4000}, {X: 5000, Y: 0},
	}
	if got := SignedArea(rect); got != -20000000 {
		t.Errorf("expected signed area -20000000, got %f", got)
	}
}

func TestSignedAreaIgnoresClosingPoint(t *testing.T) {
	open := model.Outline{
		{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000},
	}
	closed := append(append(model.Outline{}, open...), open[0])
	if SignedArea(open) != SignedArea(closed) {
		t.Errorf("closed outline area %f differs from open %f", SignedArea(closed), SignedArea(open))
	}
}

func TestSignedAreaDegenerate(t *testing.T) {
	if got := SignedArea(model.Outline{{X: 0, Y: 0}, {X: 100, Y: 100}}); got != 0 {
		t.Errorf("expected 0 for two points, got %f", got)
	}
}

func TestPolygonAreaTriangle(t *testing.T) {
	tri := model.Outline{{X: 0, Y: 0}, {X: 4000, Y: 0}, {X: 0, Y: 3000}}
	if got := PolygonArea(tri); got != 6000000 {
		t.Errorf("expected area 6000000, got %f", got)
	}
}

func TestCentroidRectangle(t *testing.T) {
	rect := model.Outline{
		{X: 0, Y: 0}, {X: 5000, Y: 0}, {X: 5000, Y: 4000}, {X: 0, Y: 4000},
	}
	c := Centroid(rect)
	if math.Abs(c.X-2500) > 1e-9 || math.Abs(c.Y-2000) > 1e-9 {
		t.Errorf("expected centroid (2500, 2000), got (%f, %f)", c.X, c.Y)
	}
}

func TestCentroidDegenerateFallsBackToMean(t *testing.T) {
	// Collinear points have zero area; the centroid falls back to the mean.
	line := model.Outline{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 2000, Y: 0}}
	c := Centroid(line)
	if math.Abs(c.X-1000) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Errorf("expected mean (1000, 0), got (%f, %f)", c.X, c.Y)
	}
}

func TestLineIntersection(t *testing.T) {
	p, ok := LineIntersection(
		model.Point2D{X: 0, Y: 0}, model.Point2D{X: 100, Y: 100},
		model.Point2D{X: 0, Y: 100}, model.Point2D{X: 100, Y: 0},
	)
	if !ok {
		t.Fatal("expected intersection")
	}
	if math.Abs(p.X-50) > 1e-9 || math.Abs(p.Y-50) > 1e-9 {
		t.Errorf("expected (50, 50), got (%f, %f)", p.X, p.Y)
	}
}

func TestLineIntersectionBeyondSegments(t *testing.T) {
	// Infinite lines intersect even when the segments do not.
	p, ok := LineIntersection(
		model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 0},
		model.Point2D{X: 100, Y: -10}, model.Point2D{X: 100, Y: -5},
	)
	if !ok {
		t.Fatal("expected intersection of infinite lines")
	}
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("expected (100, 0), got (%f, %f)", p.X, p.Y)
	}
}

func TestLineIntersectionParallel(t *testing.T) {
	_, ok := LineIntersection(
		model.Point2D{X: 0, Y: 0}, model.Point2D{X: 100, Y: 0},
		model.Point2D{X: 0, Y: 50}, model.Point2D{X: 100, Y: 50},
	)
	if ok {
		t.Error("expected no intersection for parallel lines")
	}
}

func TestProjectOnSegment(t *testing.T) {
	a := model.Point2D{X: 0, Y: 0}
	b := model.Point2D{X: 1000, Y: 0}

	tt, dist := ProjectOnSegment(model.Point2D{X: 250, Y: 40}, a, b)
	if math.Abs(tt-0.25) > 1e-9 {
		t.Errorf("expected t=0.25, got %f", tt)
	}
	if math.Abs(dist-40) > 1e-9 {
		t.Errorf("expected dist=40, got %f", dist)
	}

	// Unclamped: points past the end project beyond t=1.
	tt, _ = ProjectOnSegment(model.Point2D{X: 1500, Y: 0}, a, b)
	if math.Abs(tt-1.5) > 1e-9 {
		t.Errorf("expected t=1.5, got %f", tt)
	}
}

func TestNormalize(t *testing.T) {
	u, l := Normalize(model.Point2D{X: 3, Y: 4})
	if math.Abs(l-5) > 1e-9 {
		t.Errorf("expected length 5, got %f", l)
	}
	if math.Abs(u.X-0.6) > 1e-9 || math.Abs(u.Y-0.8) > 1e-9 {
		t.Errorf("expected (0.6, 0.8), got (%f, %f)", u.X, u.Y)
	}

	u, l = Normalize(model.Point2D{})
	if l != 0 || u.X != 0 || u.Y != 0 {
		t.Error("zero vector should normalize to zero with length 0")
	}
}

func TestPerpendicularIsCCW(t *testing.T) {
	p := Perpendicular(model.Point2D{X: 1, Y: 0})
	if p.X != 0 || p.Y != 1 {
		t.Errorf("expected (0, 1), got (%f, %f)", p.X, p.Y)
	}
}

func TestPathFormat(t *testing.T) {
	pts := []model.Point2D{
		{X: 0, Y: 100}, {X: 5000, Y: 100}, {X: 5000, Y: -100}, {X: 0, Y: -100},
	}
	want := "M 0.0 100.0 L 5000.0 100.0 L 5000.0 -100.0 L 0.0 -100.0 Z"
	if got := Path(pts); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPathRoundsToOneDecimal(t *testing.T) {
	// -0.04 rounds toward negative zero, which must print as 0.0.
	pts := []model.Point2D{{X: 1.26, Y: 2.34}, {X: 3.05, Y: -0.04}}
	want := "M 1.3 2.3 L 3.1 0.0 Z"
	if got := Path(pts); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPathEmpty(t *testing.T) {
	if got := Path(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestJoinPaths(t *testing.T) {
	got := JoinPaths([]string{"M 0.0 0.0 Z", "M 1.0 1.0 Z"})
	if got != "M 0.0 0.0 Z M 1.0 1.0 Z" {
		t.Errorf("unexpected join: %q", got)
	}
}
