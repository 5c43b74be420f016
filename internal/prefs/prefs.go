// Package prefs persists per-user dashboard preferences: the theme and the
// saved column layout per view. Preferences live in
// <user config dir>/datadeck/prefs.toml; a missing or unreadable file
// degrades to defaults.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ColumnLayout is the saved visible/hidden partition for one view.
type ColumnLayout struct {
	VisibleKeys []string `toml:"visible_keys"`
}

// Prefs holds user preferences.
type Prefs struct {
	Theme   string                  `toml:"theme"`
	Columns map[string]ColumnLayout `toml:"columns"`
}

const defaultTheme = "default"

// DefaultPath returns the preferences file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "datadeck", "prefs.toml"), nil
}

// Load reads preferences from path, falling back to defaults when the file
// is missing or malformed.
func Load(path string) Prefs {
	prefs := Prefs{Theme: defaultTheme, Columns: map[string]ColumnLayout{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return Prefs{Theme: defaultTheme, Columns: map[string]ColumnLayout{}}
	}
	if prefs.Theme == "" {
		prefs.Theme = defaultTheme
	}
	if prefs.Columns == nil {
		prefs.Columns = map[string]ColumnLayout{}
	}
	return prefs
}

// Save writes preferences to path, creating directories as needed. Saving a
// layout with no visible columns is rejected before reaching here, but the
// check is repeated to never persist an unusable layout.
func Save(path string, p Prefs) error {
	for view, layout := range p.Columns {
		if len(layout.VisibleKeys) == 0 {
			return fmt.Errorf("view %s: %w", view, errEmptyLayout)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

var errEmptyLayout = errors.New("column layout has no visible columns")
