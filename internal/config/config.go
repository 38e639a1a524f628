// ABOUTME: Settings loading with global + project config deep merge
// ABOUTME: JSON-based configuration; env vars override file values

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scoring holds the confidence weight configuration.
type Scoring struct {
	Specificity  float64 `json:"specificity,omitempty"`
	Coverage     float64 `json:"coverage,omitempty"`
	Completeness float64 `json:"completeness,omitempty"`
}

// Settings holds the merged configuration.
type Settings struct {
	Threshold       float64 `json:"threshold,omitempty"`         // dispatch threshold
	Margin          float64 `json:"margin,omitempty"`            // runner-up margin
	MaxClarifyTurns int     `json:"max_clarify_turns,omitempty"` // clarification loop bound
	Window          int     `json:"window,omitempty"`            // extractor token window
	Scoring         Scoring `json:"scoring,omitempty"`
	PatternsFile    string  `json:"patterns_file,omitempty"` // extra YAML patterns
	WorkspaceDir    string  `json:"workspace_dir,omitempty"` // script workspace root
	NoAnnotation    bool    `json:"no_annotation,omitempty"` // force the degraded path
	NoColor         bool    `json:"no_color,omitempty"`
}

// Defaults returns the documented default settings.
func Defaults() *Settings {
	return &Settings{
		Threshold:       0.6,
		Margin:          0.15,
		MaxClarifyTurns: 2,
		Window:          5,
		Scoring:         Scoring{Specificity: 0.5, Coverage: 0.2, Completeness: 0.3},
		WorkspaceDir:    ".",
	}
}

// GlobalConfigFile is the per-user config path.
func GlobalConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".superterm", "config.json")
}

// ProjectConfigFile is the per-workspace config path.
func ProjectConfigFile(root string) string {
	return filepath.Join(root, ".superterm.json")
}

// Load reads and merges defaults, global and project settings, then applies
// env overrides. Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	merged := Defaults()

	for _, path := range []string{GlobalConfigFile(), ProjectConfigFile(projectRoot)} {
		if path == "" {
			continue
		}
		s, err := loadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		merge(merged, s)
	}

	applyEnv(merged)
	return merged, nil
}

func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero values of src onto dst.
func merge(dst, src *Settings) {
	if src.Threshold != 0 {
		dst.Threshold = src.Threshold
	}
	if src.Margin != 0 {
		dst.Margin = src.Margin
	}
	if src.MaxClarifyTurns != 0 {
		dst.MaxClarifyTurns = src.MaxClarifyTurns
	}
	if src.Window != 0 {
		dst.Window = src.Window
	}
	if src.Scoring.Specificity != 0 {
		dst.Scoring.Specificity = src.Scoring.Specificity
	}
	if src.Scoring.Coverage != 0 {
		dst.Scoring.Coverage = src.Scoring.Coverage
	}
	if src.Scoring.Completeness != 0 {
		dst.Scoring.Completeness = src.Scoring.Completeness
	}
	if src.PatternsFile != "" {
		dst.PatternsFile = src.PatternsFile
	}
	if src.WorkspaceDir != "" {
		dst.WorkspaceDir = src.WorkspaceDir
	}
	if src.NoAnnotation {
		dst.NoAnnotation = true
	}
	if src.NoColor {
		dst.NoColor = true
	}
}
