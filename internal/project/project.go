// Package project persists drafting projects, templates, and application
// configuration as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planverk/archdraft/internal/model"
)

// Save writes a project to the given path as indented JSON.
// It creates any missing parent directories automatically.
func Save(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	// Ensure element slices are never nil
	if p.Walls == nil {
		p.Walls = []model.Wall{}
	}
	if p.Stairs == nil {
		p.Stairs = []model.Stairs{}
	}
	if p.Roofs == nil {
		p.Roofs = []model.Roof{}
	}
	return p, nil
}
