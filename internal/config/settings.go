// Package config holds the settings file format and defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSource is returned by Validate when the content source is not
// configured. Aggregation must not start, or touch the network,
// without a source.
var ErrNoSource = errors.New("content source not configured")

// Settings holds all configuration options.
type Settings struct {
	// Content source: the GitHub repository holding the project catalog.
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	// Ref is the branch, tag or commit to read; empty uses the default branch.
	Ref string `json:"ref"`
	// ProjectsRoot is the repository path with one directory per project.
	ProjectsRoot string `json:"projects_root"`

	// Network settings
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	MaxConcurrentResolves int `json:"max_concurrent_resolves"`

	// Playback settings
	PlayerCommand string   `json:"player_command"`
	PlayerArgs    []string `json:"player_args"`

	// Output settings
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ProjectsRoot:          "projects",
		RequestTimeoutSeconds: 30,
		MaxConcurrentResolves: 8,
		PlayerCommand:         "mpv",
		PlayerArgs:            []string{"--no-video"},
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that aggregation can run at all.
func (s *Settings) Validate() error {
	if s.Owner == "" {
		return fmt.Errorf("%w: owner is empty", ErrNoSource)
	}
	if s.Repo == "" {
		return fmt.Errorf("%w: repo is empty", ErrNoSource)
	}
	return nil
}
