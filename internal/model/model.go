package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point3D represents a 3D coordinate in mm.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// WireCloseTol is the maximum distance in mm between the first and last point
// of an outline for it to count as closed.
const WireCloseTol = 1.0

// Outline represents a polygon as a sequence of 2D points.
// An outline may carry an explicit closing point (last == first); most
// operations accept either form.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// IsClosed reports whether the first and last points coincide within WireCloseTol.
func (o Outline) IsClosed() bool {
	if len(o) < 3 {
		return false
	}
	first, last := o[0], o[len(o)-1]
	dx := first.X - last.X
	dy := first.Y - last.Y
	return math.Sqrt(dx*dx+dy*dy) <= WireCloseTol
}

// Closed returns the outline with an explicit closing point appended when needed.
func (o Outline) Closed() Outline {
	if len(o) < 3 || o.IsClosed() {
		return o
	}
	return append(append(Outline{}, o...), o[0])
}

// Ring returns the outline without an explicit closing point.
func (o Outline) Ring() Outline {
	if o.IsClosed() {
		return o[:len(o)-1]
	}
	return o
}

// OpeningKind distinguishes doors from windows.
type OpeningKind string

const (
	OpeningDoor   OpeningKind = "door"
	OpeningWindow OpeningKind = "window"
)

// WallOpening represents a door or window cut into a wall.
// Position is the fraction along the wall axis (0 = start, 1 = end) at the
// opening's center.
type WallOpening struct {
	ID         string      `json:"id"`
	Kind       OpeningKind `json:"kind"`
	Position   float64     `json:"position"`
	Width      float64     `json:"width"`       // mm
	Height     float64     `json:"height"`      // mm
	SillHeight float64     `json:"sill_height"` // mm from floor to opening bottom
}

// NewOpening creates a WallOpening with a fresh id.
func NewOpening(kind OpeningKind, position, width, height, sillHeight float64) WallOpening {
	return WallOpening{
		ID:         uuid.New().String()[:8],
		Kind:       kind,
		Position:   position,
		Width:      width,
		Height:     height,
		SillHeight: sillHeight,
	}
}

// Wall represents a straight wall centerline with openings.
type Wall struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Start     Point2D       `json:"start"`
	End       Point2D       `json:"end"`
	Thickness float64       `json:"thickness"` // mm, > 0
	Height    float64       `json:"height"`    // mm, > 0
	Material  string        `json:"material,omitempty"`
	Openings  []WallOpening `json:"openings,omitempty"`
}

// NewWall creates a Wall with a fresh id and no openings.
func NewWall(label string, start, end Point2D, thickness, height float64) Wall {
	return Wall{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Start:     start,
		End:       end,
		Thickness: thickness,
		Height:    height,
	}
}

// Length returns the centerline length of the wall.
func (w Wall) Length() float64 {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// CutResult holds the outcome of subtracting openings from a wall outline.
// When Success is false, RemainingPath is empty and Error describes the cause.
type CutResult struct {
	Success       bool     `json:"success"`
	OriginalPath  string   `json:"original_path"`
	CutPaths      []string `json:"cut_paths,omitempty"`
	RemainingPath string   `json:"remaining_path,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// ValidationResult accumulates validation findings. Errors make the input
// unusable; warnings are advisory and never block geometry generation.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Project ties everything together for save/load.
type Project struct {
	Name     string        `json:"name"`
	Walls    []Wall        `json:"walls"`
	Stairs   []Stairs      `json:"stairs"`
	Roofs    []Roof        `json:"roofs"`
	Settings DraftSettings `json:"settings"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Walls:    []Wall{},
		Stairs:   []Stairs{},
		Roofs:    []Roof{},
		Settings: DefaultSettings(),
	}
}
