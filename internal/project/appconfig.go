package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/planverk/archdraft/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.archdraft/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".archdraft")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// maxRecentProjects caps the recent-projects list length.
const maxRecentProjects = 10

// AddRecentProject prepends a path to the recent-projects list, removing any
// existing occurrence and trimming the list to its cap.
func AddRecentProject(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range config.RecentProjects {
		if p != path && len(recent) < maxRecentProjects {
			recent = append(recent, p)
		}
	}
	config.RecentProjects = recent
}

// RememberProject records a project path in the recent-projects list of the
// config stored at configPath, creating the config with defaults when it does
// not exist yet. The updated config is saved back and returned.
func RememberProject(configPath, projectPath string) (model.AppConfig, error) {
	config, err := LoadAppConfig(configPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	AddRecentProject(&config, projectPath)
	if err := SaveAppConfig(configPath, config); err != nil {
		return model.AppConfig{}, err
	}
	return config, nil
}
