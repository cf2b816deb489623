package ui

import (
	"testing"

	"github.com/five82/wallflower/internal/appearance"
)

func TestGetTheme(t *testing.T) {
	th := GetTheme("Kanagawa", appearance.Light)
	if th.Name != "Kanagawa" || th.Mode != appearance.Light {
		t.Fatalf("GetTheme = %s/%v, want Kanagawa/light", th.Name, th.Mode)
	}

	th = GetTheme("missing", appearance.Dark)
	if th.Name != "Nightfox" || th.Mode != appearance.Dark {
		t.Fatalf("GetTheme fallback = %s/%v, want Nightfox/dark", th.Name, th.Mode)
	}
}

func TestNextPalette(t *testing.T) {
	name := PaletteNames()[0]
	seen := map[string]bool{}
	for range PaletteNames() {
		seen[name] = true
		name = NextPalette(name)
	}
	if name != PaletteNames()[0] {
		t.Fatalf("cycle ended at %q, want %q", name, PaletteNames()[0])
	}
	if len(seen) != len(PaletteNames()) {
		t.Fatalf("cycle visited %d palettes, want %d", len(seen), len(PaletteNames()))
	}
	if got := NextPalette("unknown"); got != PaletteNames()[0] {
		t.Fatalf("NextPalette(unknown) = %q", got)
	}
}

func TestPalettesDefineBothModes(t *testing.T) {
	for _, name := range PaletteNames() {
		p := GetPalette(name)
		for _, mode := range []appearance.Mode{appearance.Dark, appearance.Light} {
			th := p.Theme(mode)
			if th.Name != name || th.Mode != mode {
				t.Fatalf("%s %v: got %s/%v", name, mode, th.Name, th.Mode)
			}
			for field, color := range map[string]string{
				"Background": th.Background,
				"Surface":    th.Surface,
				"Text":       th.Text,
				"Accent":     th.Accent,
				"Danger":     th.Danger,
			} {
				if color == "" {
					t.Fatalf("%s %v: %s is empty", name, mode, field)
				}
			}
		}
		if p.Dark.Background == p.Light.Background {
			t.Fatalf("%s: light and dark share a background", name)
		}
	}
}
