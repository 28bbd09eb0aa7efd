package engine

import "github.com/planverk/archdraft/internal/model"

// QuantityTakeoff summarizes material quantities derived from a plan.
type QuantityTakeoff struct {
	WallGrossArea float64 `json:"wall_gross_area"` // sq mm, elevation area before openings
	OpeningArea   float64 `json:"opening_area"`    // sq mm subtracted from walls
	WallNetArea   float64 `json:"wall_net_area"`   // sq mm
	DoorCount     int     `json:"door_count"`
	WindowCount   int     `json:"window_count"`
	StepCount     int     `json:"step_count"`
	RoofArea      float64 `json:"roof_area"`   // sq mm, true sloped area
	RoofVolume    float64 `json:"roof_volume"` // cu mm
	WastePercent  float64 `json:"waste_percent"`
	EstimatedCost float64 `json:"estimated_cost"` // wall + roof material if pricing available
}

// sqmmPerSqm converts square millimeters to square meters for pricing.
const sqmmPerSqm = 1_000_000.0

// CalculateTakeoff computes material quantities for a generated plan.
// It applies the settings' waste factor and, when prices per square meter are
// configured, a cost estimate.
func CalculateTakeoff(plan Plan, settings model.DraftSettings) QuantityTakeoff {
	t := QuantityTakeoff{WastePercent: settings.WastePercent}

	for _, wp := range plan.Walls {
		t.WallGrossArea += wp.Wall.Length() * wp.Wall.Height
		for _, op := range wp.Wall.Openings {
			t.OpeningArea += op.Width * op.Height
			switch op.Kind {
			case model.OpeningDoor:
				t.DoorCount++
			case model.OpeningWindow:
				t.WindowCount++
			}
		}
	}
	t.WallNetArea = t.WallGrossArea - t.OpeningArea
	if t.WallNetArea < 0 {
		t.WallNetArea = 0
	}

	for _, sp := range plan.Stairs {
		t.StepCount += len(sp.Steps)
	}

	for _, rp := range plan.Roofs {
		t.RoofArea += rp.Calculation.Area
		t.RoofVolume += rp.Calculation.Volume
	}

	wasteFactor := 1.0 + settings.WastePercent/100.0
	t.EstimatedCost = (t.WallNetArea/sqmmPerSqm*settings.PricePerSqm +
		t.RoofArea/sqmmPerSqm*settings.RoofPricePerSqm) * wasteFactor

	return t
}
