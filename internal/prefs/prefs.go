// Package prefs persists wallflower's user preferences in
// ~/.config/wallflower/prefs.toml.
//
// Only the color palette is stored. Light/dark mode is deliberately left out:
// it follows the terminal on every launch.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/wallflower/internal/config"
)

// Prefs holds user preferences.
type Prefs struct {
	Palette string `toml:"palette"`
}

const (
	defaultPrefsPath = "~/.config/wallflower/prefs.toml"
	DefaultPalette   = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Preferences are cosmetic, so a missing,
// unreadable or malformed file yields the defaults instead of an error.
func Load(path string) Prefs {
	defaults := Prefs{Palette: DefaultPalette}

	resolved, err := resolvePath(path)
	if err != nil {
		return defaults
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return defaults
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return defaults
	}
	p.Palette = strings.TrimSpace(p.Palette)
	if p.Palette == "" {
		p.Palette = DefaultPalette
	}
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
