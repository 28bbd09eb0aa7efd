package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default drafting settings applied to new projects
	DefaultWallThickness float64 `json:"default_wall_thickness"`
	DefaultWallHeight    float64 `json:"default_wall_height"`
	TargetTreadDepth     float64 `json:"target_tread_depth"`
	DefaultStairWidth    float64 `json:"default_stair_width"`
	LandingDepth         float64 `json:"landing_depth"`
	DefaultOverhang      float64 `json:"default_overhang"`
	DefaultRoofSlope     float64 `json:"default_roof_slope"`
	DefaultRoofThickness float64 `json:"default_roof_thickness"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultWallThickness: defaults.DefaultWallThickness,
		DefaultWallHeight:    defaults.DefaultWallHeight,
		TargetTreadDepth:     defaults.TargetTreadDepth,
		DefaultStairWidth:    defaults.DefaultStairWidth,
		LandingDepth:         defaults.LandingDepth,
		DefaultOverhang:      defaults.DefaultOverhang,
		DefaultRoofSlope:     defaults.DefaultRoofSlope,
		DefaultRoofThickness: defaults.DefaultRoofThickness,
		AutoSaveInterval:     0,
		RecentProjects:       []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a DraftSettings
// struct. This is used when creating a new project so it inherits the user's
// saved defaults.
func (c AppConfig) ApplyToSettings(s *DraftSettings) {
	s.DefaultWallThickness = c.DefaultWallThickness
	s.DefaultWallHeight = c.DefaultWallHeight
	s.TargetTreadDepth = c.TargetTreadDepth
	s.DefaultStairWidth = c.DefaultStairWidth
	s.LandingDepth = c.LandingDepth
	s.DefaultOverhang = c.DefaultOverhang
	s.DefaultRoofSlope = c.DefaultRoofSlope
	s.DefaultRoofThickness = c.DefaultRoofThickness
}
