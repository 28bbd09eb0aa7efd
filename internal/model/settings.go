package model

// DraftSettings holds drafting defaults applied when elements are created
// without explicit dimensions, plus export configuration.
type DraftSettings struct {
	// Element defaults
	DefaultWallThickness float64 `json:"default_wall_thickness"` // mm
	DefaultWallHeight    float64 `json:"default_wall_height"`    // mm
	TargetTreadDepth     float64 `json:"target_tread_depth"`     // mm
	DefaultStairWidth    float64 `json:"default_stair_width"`    // mm
	LandingDepth         float64 `json:"landing_depth"`          // mm
	DefaultOverhang      float64 `json:"default_overhang"`       // mm
	DefaultRoofSlope     float64 `json:"default_roof_slope"`     // degrees
	DefaultRoofThickness float64 `json:"default_roof_thickness"` // mm

	// Quantity takeoff
	WastePercent    float64 `json:"waste_percent"` // e.g. 10 for 10%
	PricePerSqm     float64 `json:"price_per_sqm"` // wall material price
	RoofPricePerSqm float64 `json:"roof_price_per_sqm"`
}

// DefaultSettings returns drafting defaults for new projects.
func DefaultSettings() DraftSettings {
	return DraftSettings{
		DefaultWallThickness: 200.0,
		DefaultWallHeight:    2700.0,
		TargetTreadDepth:     280.0,
		DefaultStairWidth:    900.0,
		LandingDepth:         1200.0,
		DefaultOverhang:      400.0,
		DefaultRoofSlope:     30.0,
		DefaultRoofThickness: 150.0,
		WastePercent:         10.0,
		PricePerSqm:          0,
		RoofPricePerSqm:      0,
	}
}
