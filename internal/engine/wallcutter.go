// Package engine implements the parametric building-element generators:
// wall opening cuts, code-checked stair flights, and sloped roof synthesis.
// All operations are pure computations over value records; nothing here does
// I/O or retains caller state beyond a WallCutter's private opening list.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/planverk/archdraft/internal/geom"
	"github.com/planverk/archdraft/internal/model"
)

const (
	// maxOpeningWidthRatio caps an opening's width relative to the wall length.
	maxOpeningWidthRatio = 0.9
	// maxSpanOverlapRatio is the fraction of a new opening's along-wall span
	// that may overlap an existing opening before the new one is rejected.
	maxSpanOverlapRatio = 0.5
	// cutMargin is the extra depth in mm added to each side of a cut outline
	// so the cut clears the wall faces.
	cutMargin = 20.0
)

// WallCutter subtracts rectangular openings from a straight wall outline.
// It is constructed from one Wall and keeps a private copy of that wall's
// opening list; one wall maps to one cutter. Concurrent callers must use
// separate instances.
type WallCutter struct {
	wall     model.Wall
	openings []model.WallOpening
}

// NewWallCutter builds a cutter for the given wall, copying its openings.
func NewWallCutter(wall model.Wall) *WallCutter {
	openings := append([]model.WallOpening{}, wall.Openings...)
	wall.Openings = nil
	return &WallCutter{wall: wall, openings: openings}
}

// Openings returns a copy of the cutter's current opening list.
func (wc *WallCutter) Openings() []model.WallOpening {
	return append([]model.WallOpening{}, wc.openings...)
}

// axis returns the wall's unit direction, CCW perpendicular, and length.
func (wc *WallCutter) axis() (dir, perp model.Point2D, length float64) {
	dir, length = geom.Normalize(geom.Sub(wc.wall.End, wc.wall.Start))
	perp = geom.Perpendicular(dir)
	return dir, perp, length
}

// WallOutline returns the wall's 4-corner rectangle: the centerline extended
// by half-thickness perpendicular offsets.
func (wc *WallCutter) WallOutline() model.Outline {
	_, perp, _ := wc.axis()
	half := geom.Scale(perp, wc.wall.Thickness/2)
	return model.Outline{
		geom.Add(wc.wall.Start, half),
		geom.Add(wc.wall.End, half),
		geom.Sub(wc.wall.End, half),
		geom.Sub(wc.wall.Start, half),
	}
}

// ValidateOpening checks an opening against the wall's dimensions. Multiple
// violations accumulate; the cutter's state is never touched.
func (wc *WallCutter) ValidateOpening(op model.WallOpening) model.ValidationResult {
	var errs []string
	length := wc.wall.Length()

	if op.Position < -geom.PositionTol || op.Position > 1+geom.PositionTol {
		errs = append(errs, fmt.Sprintf("opening position %.3f is outside the wall (must be within 0 to 1)", op.Position))
	}
	if op.Width <= 0 {
		errs = append(errs, fmt.Sprintf("opening width %.1fmm must be positive", op.Width))
	} else if op.Width > maxOpeningWidthRatio*length {
		errs = append(errs, fmt.Sprintf("opening width %.1fmm exceeds %.0f%% of wall length %.1fmm", op.Width, maxOpeningWidthRatio*100, length))
	}
	if op.Height <= 0 {
		errs = append(errs, fmt.Sprintf("opening height %.1fmm must be positive", op.Height))
	} else if op.Height > wc.wall.Height {
		errs = append(errs, fmt.Sprintf("opening height %.1fmm exceeds wall height %.1fmm", op.Height, wc.wall.Height))
	}
	if op.SillHeight < 0 {
		errs = append(errs, fmt.Sprintf("sill height %.1fmm must not be negative", op.SillHeight))
	}
	if op.SillHeight >= 0 && op.Height > 0 && op.SillHeight+op.Height > wc.wall.Height {
		errs = append(errs, fmt.Sprintf("sill height %.1fmm plus opening height %.1fmm exceeds wall height %.1fmm", op.SillHeight, op.Height, wc.wall.Height))
	}

	return model.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// span returns the opening's along-wall extent as fractions of the wall length.
func (wc *WallCutter) span(op model.WallOpening) (lo, hi float64) {
	half := op.Width / 2 / wc.wall.Length()
	return op.Position - half, op.Position + half
}

// AddOpening validates the opening and appends it to the cutter's list.
// Beyond dimensional validation, the opening is rejected when its along-wall
// span overlaps an existing opening's span by more than half its own span.
// On failure the cutter's state is unchanged.
func (wc *WallCutter) AddOpening(op model.WallOpening) (bool, error) {
	if v := wc.ValidateOpening(op); !v.Valid {
		return false, fmt.Errorf("invalid opening: %s", strings.Join(v.Errors, "; "))
	}

	newLo, newHi := wc.span(op)
	newSpan := newHi - newLo
	for _, existing := range wc.openings {
		exLo, exHi := wc.span(existing)
		overlap := min(newHi, exHi) - max(newLo, exLo)
		if overlap > maxSpanOverlapRatio*newSpan {
			return false, fmt.Errorf("opening overlaps existing opening %s by more than %.0f%% of its span", existing.ID, maxSpanOverlapRatio*100)
		}
	}

	wc.openings = append(wc.openings, op)
	return true, nil
}

// RemoveOpening deletes the opening with the given id.
// Returns true if found and removed.
func (wc *WallCutter) RemoveOpening(id string) bool {
	for i, op := range wc.openings {
		if op.ID == id {
			wc.openings = append(wc.openings[:i], wc.openings[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateOpening replaces the stored opening with the given id, keeping the id.
// Returns true if found and updated.
func (wc *WallCutter) UpdateOpening(id string, updated model.WallOpening) bool {
	for i := range wc.openings {
		if wc.openings[i].ID == id {
			updated.ID = id
			wc.openings[i] = updated
			return true
		}
	}
	return false
}

// WallSegments returns the rectangular wall pieces that remain between
// openings, walking the wall left to right. With no openings the full outline
// is returned as a single segment. For non-overlapping openings the segments
// plus the opening widths cover the wall exactly.
func (wc *WallCutter) WallSegments() []model.Outline {
	if len(wc.openings) == 0 {
		return []model.Outline{wc.WallOutline()}
	}

	sorted := append([]model.WallOpening{}, wc.openings...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	var segments []model.Outline
	cursor := 0.0
	for _, op := range sorted {
		lo, hi := wc.span(op)
		if lo > cursor {
			segments = append(segments, wc.segmentOutline(cursor, lo))
		}
		if hi > cursor {
			cursor = hi
		}
	}
	if cursor < 1 {
		segments = append(segments, wc.segmentOutline(cursor, 1))
	}
	return segments
}

// segmentOutline builds the rectangle between fractional positions a and b.
func (wc *WallCutter) segmentOutline(a, b float64) model.Outline {
	_, perp, _ := wc.axis()
	half := geom.Scale(perp, wc.wall.Thickness/2)
	p1 := geom.Lerp(wc.wall.Start, wc.wall.End, a)
	p2 := geom.Lerp(wc.wall.Start, wc.wall.End, b)
	return model.Outline{
		geom.Add(p1, half),
		geom.Add(p2, half),
		geom.Sub(p2, half),
		geom.Sub(p1, half),
	}
}

// Cut subtracts all stored openings from the wall outline. Every opening is
// re-validated first; an invalid opening fails the whole cut with no geometry.
// Faults during computation are recovered and reported through the result,
// never propagated.
func (wc *WallCutter) Cut() (result model.CutResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.CutResult{
				Success: false,
				Error:   fmt.Sprintf("cut failed: %v", r),
			}
		}
	}()

	for _, op := range wc.openings {
		if v := wc.ValidateOpening(op); !v.Valid {
			return model.CutResult{
				Success: false,
				Error:   fmt.Sprintf("opening %s is invalid: %s", op.ID, strings.Join(v.Errors, "; ")),
			}
		}
	}

	dir, perp, _ := wc.axis()
	original := geom.Path(wc.WallOutline())

	cutPaths := make([]string, 0, len(wc.openings))
	for _, op := range wc.openings {
		center := geom.Lerp(wc.wall.Start, wc.wall.End, op.Position)
		alongHalf := geom.Scale(dir, op.Width/2)
		acrossHalf := geom.Scale(perp, (wc.wall.Thickness+cutMargin)/2)
		outline := model.Outline{
			geom.Add(geom.Sub(center, alongHalf), acrossHalf),
			geom.Add(geom.Add(center, alongHalf), acrossHalf),
			geom.Sub(geom.Add(center, alongHalf), acrossHalf),
			geom.Sub(geom.Sub(center, alongHalf), acrossHalf),
		}
		cutPaths = append(cutPaths, geom.Path(outline))
	}

	segments := wc.WallSegments()
	segmentPaths := make([]string, 0, len(segments))
	for _, seg := range segments {
		segmentPaths = append(segmentPaths, geom.Path(seg))
	}

	return model.CutResult{
		Success:       true,
		OriginalPath:  original,
		CutPaths:      cutPaths,
		RemainingPath: geom.JoinPaths(segmentPaths),
	}
}

// PositionOnWall projects a point onto the wall axis and returns its
// fractional position clamped to [0, 1]. It returns -1 when the point lies
// farther from the axis than thickness/2 plus the tolerance. A tolerance of 0
// uses the default geom.WallDistanceTol.
func (wc *WallCutter) PositionOnWall(p model.Point2D, tolerance float64) float64 {
	if tolerance <= 0 {
		tolerance = geom.WallDistanceTol
	}
	t, dist := geom.ProjectOnSegment(p, wc.wall.Start, wc.wall.End)
	if dist > wc.wall.Thickness/2+tolerance {
		return -1
	}
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
