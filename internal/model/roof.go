package model

// RoofType selects the roof synthesis strategy.
type RoofType string

const (
	RoofGable RoofType = "gable"
	RoofHip   RoofType = "hip"
	RoofShed  RoofType = "shed"
	RoofFlat  RoofType = "flat"
)

// FlatRoofHeight is the nominal elevation in mm assigned to flat roof faces.
const FlatRoofHeight = 50.0

// Roof represents a roof over a closed 2D footprint. An unclosed footprint
// is closed implicitly during generation.
type Roof struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	BasePoints Outline  `json:"base_points"` // ordered footprint polygon, >= 3 points
	RoofType   RoofType `json:"roof_type"`
	SlopeAngle float64  `json:"slope_angle"` // degrees, >= 0
	Overhang   float64  `json:"overhang"`    // mm, >= 0
	Thickness  float64  `json:"thickness"`   // mm
}

// RoofFace is one planar slope of a roof. Slope is the tangent of the face's
// pitch angle; Elevation is the face's peak height above the footprint plane.
type RoofFace struct {
	ID        string    `json:"id"`
	Vertices  []Point3D `json:"vertices"` // >= 3
	Elevation float64   `json:"elevation"`
	Slope     float64   `json:"slope"`
}

// RoofCalculation holds the synthesized roof geometry.
type RoofCalculation struct {
	Faces       []RoofFace `json:"faces"`
	RidgeHeight float64    `json:"ridge_height"` // mm
	Area        float64    `json:"area"`         // true sloped surface area, sq mm
	Volume      float64    `json:"volume"`       // enclosed volume approximation, cu mm
}
