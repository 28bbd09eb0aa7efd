package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planverk/archdraft/internal/model"
)

// DefaultTemplatePath returns the default location of the template store,
// ~/.archdraft/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store as JSON to the given path.
func SaveTemplates(path string, ts model.TemplateStore) error {
	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	return nil
}

// LoadTemplates reads a template store from the given path. A missing file
// is not an error; an empty store is returned instead.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, fmt.Errorf("failed to read template file: %w", err)
	}
	var ts model.TemplateStore
	if err := json.Unmarshal(data, &ts); err != nil {
		return model.TemplateStore{}, fmt.Errorf("failed to parse template file: %w", err)
	}
	if ts.Templates == nil {
		ts.Templates = []model.ProjectTemplate{}
	}
	return ts, nil
}

// LoadDefaultTemplates loads templates from the default path.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	return LoadTemplates(DefaultTemplatePath())
}

// SaveDefaultTemplates saves templates to the default path.
func SaveDefaultTemplates(ts model.TemplateStore) error {
	return SaveTemplates(DefaultTemplatePath(), ts)
}
