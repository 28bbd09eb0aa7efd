package model

// BuildingCode holds the riser/tread/width thresholds a stair flight is
// checked against. Compliance is advisory: out-of-code dimensions are
// reported, never rejected.
type BuildingCode struct {
	MinRiser float64 `json:"min_riser"` // mm
	MaxRiser float64 `json:"max_riser"` // mm
	MinTread float64 `json:"min_tread"` // mm
	MaxTread float64 `json:"max_tread"` // mm
	MinWidth float64 `json:"min_width"` // mm
}

// DefaultBuildingCode returns the built-in residential stair code table.
func DefaultBuildingCode() BuildingCode {
	return BuildingCode{
		MinRiser: 100,
		MaxRiser: 200,
		MinTread: 250,
		MaxTread: 355,
		MinWidth: 860,
	}
}

// StairPathType describes the plan shape of a stair flight.
type StairPathType string

const (
	PathStraight StairPathType = "straight"
	PathLShaped  StairPathType = "l-shaped"
	PathUShaped  StairPathType = "u-shaped"
)

// Stairs represents a flight of stairs.
type Stairs struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	TotalRise    float64       `json:"total_rise"`   // mm, > 0
	TotalRun     float64       `json:"total_run"`    // mm, > 0
	TreadDepth   float64       `json:"tread_depth"`  // mm
	RiserHeight  float64       `json:"riser_height"` // mm
	StairCount   int           `json:"stair_count"`  // >= 2
	StairWidth   float64       `json:"stair_width"`  // mm, code minimum 860
	PathType     StairPathType `json:"path_type"`
	PathPoints   []Point2D     `json:"path_points"`   // ordered centerline, >= 2 points
	LandingDepth float64       `json:"landing_depth"` // mm
}

// StairStep is one tread in a flight. TreadStart and TreadEnd are the tread
// centroid offset perpendicular to the path centerline by half the stair
// width on either side.
type StairStep struct {
	Index          int     `json:"index"`
	TreadStart     Point2D `json:"tread_start"`
	TreadEnd       Point2D `json:"tread_end"`
	CumulativeRise float64 `json:"cumulative_rise"` // mm, strictly increasing
}

// StairCalculation holds derived riser/tread dimensions and the advisory
// code-compliance findings for a flight.
type StairCalculation struct {
	StairCount  int      `json:"stair_count"`
	RiserHeight float64  `json:"riser_height"` // mm
	TreadDepth  float64  `json:"tread_depth"`  // mm
	TotalRise   float64  `json:"total_rise"`   // mm
	TotalRun    float64  `json:"total_run"`    // mm
	Slope       float64  `json:"slope"`        // degrees
	PassesCode  bool     `json:"passes_code"`
	CodeIssues  []string `json:"code_issues,omitempty"`
}
