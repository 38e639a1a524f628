// ABOUTME: Environment variable overrides applied after file configs
// ABOUTME: SUPERTERM_* variables win over both global and project files

package config

import (
	"os"
	"strconv"
)

// applyEnv overlays SUPERTERM_* environment variables onto s.
func applyEnv(s *Settings) {
	if v, ok := lookupFloat("SUPERTERM_THRESHOLD"); ok {
		s.Threshold = v
	}
	if v, ok := lookupFloat("SUPERTERM_MARGIN"); ok {
		s.Margin = v
	}
	if v, ok := lookupInt("SUPERTERM_MAX_CLARIFY_TURNS"); ok {
		s.MaxClarifyTurns = v
	}
	if v := os.Getenv("SUPERTERM_PATTERNS"); v != "" {
		s.PatternsFile = v
	}
	if v := os.Getenv("SUPERTERM_WORKSPACE"); v != "" {
		s.WorkspaceDir = v
	}
	if isTruthy(os.Getenv("SUPERTERM_NO_ANNOTATION")) {
		s.NoAnnotation = true
	}
	if isTruthy(os.Getenv("NO_COLOR")) || isTruthy(os.Getenv("SUPERTERM_NO_COLOR")) {
		s.NoColor = true
	}
}

func lookupFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func lookupInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isTruthy(v string) bool {
	switch v {
	case "", "0", "false", "no":
		return false
	}
	return true
}
