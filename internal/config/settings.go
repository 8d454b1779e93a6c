package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlantUMLSettings controls how the PlantUML render adapter invokes its
// external renderer.
type PlantUMLSettings struct {
	// Command is the argv used to invoke the renderer; the PlantUML source
	// is piped to its stdin and the rendered SVG is read from its stdout.
	Command []string `yaml:"command"`

	// TimeoutSeconds bounds a single render invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// OpenAPISettings controls the OpenAPI bundling adapter.
type OpenAPISettings struct {
	// TimeoutSeconds bounds a single bundle invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Settings is the ambient configuration for a sync run: logging, color,
// history, and render-adapter invocation. It is distinct from the JSON
// documents config, which describes what to sync rather than how to run.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Color forces colored console output on, overriding TTY detection.
	Color bool `yaml:"color"`

	// HistoryDBPath enables the SQLite run-history store when non-empty.
	HistoryDBPath string `yaml:"history_db_path"`

	PlantUML PlantUMLSettings `yaml:"plantuml"`
	OpenAPI  OpenAPISettings  `yaml:"openapi"`
}

// DefaultSettings returns the settings applied when no settings file is
// present.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:      "info",
		Color:         false,
		HistoryDBPath: "",
		PlantUML: PlantUMLSettings{
			Command:        []string{"plantuml", "-pipe", "-tsvg"},
			TimeoutSeconds: 30,
		},
		OpenAPI: OpenAPISettings{
			TimeoutSeconds: 30,
		},
	}
}

// LoadSettings reads a YAML settings file at path. A missing file is not an
// error: DefaultSettings is returned instead.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return settings, nil
}
