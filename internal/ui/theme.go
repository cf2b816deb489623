package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wallflower/internal/appearance"
)

// Theme defines colors for one appearance of a palette.
type Theme struct {
	Name string
	Mode appearance.Mode

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and modals
	SurfaceAlt string // Cards
	FocusBg    string // Focused card

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		// Base styles
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		SurfaceAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		// Text styles
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		// Component styles
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderMuted)).
			Padding(0, 1),

		CardFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Heart: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Logo      lipgloss.Style
	Selected  lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	Heart     lipgloss.Style
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// This ensures styled text has explicit backgrounds instead of transparent/inherit.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		Background: s.Background.Background(bg),
		Surface:    s.Surface.Background(bg),
		SurfaceAlt: s.SurfaceAlt.Background(bg),

		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),

		Header:    s.Header.Background(bg),
		Footer:    s.Footer.Background(bg),
		Logo:      s.Logo.Background(bg),
		Selected:  s.Selected,
		Card:      s.Card,
		CardFocus: s.CardFocus,
		Heart:     s.Heart.Background(bg),
	}
}

// Palette pairs the dark and light variants of a color scheme.
type Palette struct {
	Name  string
	Dark  Theme
	Light Theme
}

// Theme returns the variant for mode.
func (p Palette) Theme(mode appearance.Mode) Theme {
	if mode == appearance.Light {
		return p.Light
	}
	return p.Dark
}

// Palette definitions

var palettes = map[string]Palette{
	"Nightfox": {Name: "Nightfox", Dark: nightfoxTheme(), Light: dayfoxTheme()},
	"Kanagawa": {Name: "Kanagawa", Dark: kanagawaTheme(), Light: lotusTheme()},
	"Slate":    {Name: "Slate", Dark: slateTheme(), Light: slateLightTheme()},
}

var paletteOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetPalette returns a palette by name, falling back to Nightfox.
func GetPalette(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["Nightfox"]
}

// GetTheme returns the variant of the named palette for mode.
func GetTheme(name string, mode appearance.Mode) Theme {
	return GetPalette(name).Theme(mode)
}

// NextPalette returns the next palette name in the cycle.
func NextPalette(current string) string {
	for i, name := range paletteOrder {
		if name == current {
			return paletteOrder[(i+1)%len(paletteOrder)]
		}
	}
	return paletteOrder[0]
}

// PaletteNames returns available palette names.
func PaletteNames() []string {
	return paletteOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",
		Mode: appearance.Dark,

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderMuted: "#212e3f", // bg2
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func dayfoxTheme() Theme {
	// Dayfox, the light Nightfox variant
	return Theme{
		Name: "Nightfox",
		Mode: appearance.Light,

		Background: "#e4dcd4", // bg0
		Surface:    "#f6f2ee", // bg1
		SurfaceAlt: "#dbd1dd", // bg2
		FocusBg:    "#d3c7bb", // bg3

		SelectionBg:   "#e7d2be", // sel0
		SelectionText: "#3d2b5a", // fg1

		Border:      "#aab0ad", // bg4
		BorderMuted: "#d3c7bb", // bg3
		BorderFocus: "#2848a9", // blue

		Text:    "#3d2b5a", // fg1
		Muted:   "#837a72", // comment
		Faint:   "#824d5b", // fg3
		Accent:  "#2848a9", // blue
		Success: "#396847", // green
		Warning: "#ac5402", // yellow
		Danger:  "#a5222f", // red
		Info:    "#287980", // cyan
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",
		Mode: appearance.Dark,

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4
		FocusBg:    "#2A2A37", // sumiInk4

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		Border:      "#54546D", // sumiInk6
		BorderMuted: "#2A2A37", // sumiInk4
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue
	}
}

func lotusTheme() Theme {
	// Kanagawa lotus
	return Theme{
		Name: "Kanagawa",
		Mode: appearance.Light,

		Background: "#d5cea3", // lotusWhite0
		Surface:    "#f2ecbc", // lotusWhite3
		SurfaceAlt: "#e7dba0", // lotusWhite4
		FocusBg:    "#e4d794", // lotusWhite5

		SelectionBg:   "#c9cbd1", // lotusViolet3
		SelectionText: "#545464", // lotusInk1

		Border:      "#a09cac", // lotusViolet1
		BorderMuted: "#e4d794", // lotusWhite5
		BorderFocus: "#4d699b", // lotusBlue4

		Text:    "#545464", // lotusInk1
		Muted:   "#716e61", // lotusGray2
		Faint:   "#8a8980", // lotusGray3
		Accent:  "#4d699b", // lotusBlue4
		Success: "#6f894e", // lotusGreen
		Warning: "#77713f", // lotusYellow
		Danger:  "#c84053", // lotusRed
		Info:    "#597b75", // lotusAqua
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",
		Mode: appearance.Dark,

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548", // between slate-800 and slate-700

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // slate-800
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}

func slateLightTheme() Theme {
	return Theme{
		Name: "Slate",
		Mode: appearance.Light,

		Background: "#f1f5f9", // slate-100
		Surface:    "#f8fafc", // slate-50
		SurfaceAlt: "#e2e8f0", // slate-200
		FocusBg:    "#cbd5e1", // slate-300

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#cbd5e1", // slate-300
		BorderMuted: "#e2e8f0", // slate-200
		BorderFocus: "#0284c7", // sky-600

		Text:    "#0f172a", // slate-900
		Muted:   "#475569", // slate-600
		Faint:   "#64748b", // slate-500
		Accent:  "#0284c7", // sky-600
		Success: "#16a34a", // green-600
		Warning: "#d97706", // amber-600
		Danger:  "#dc2626", // red-600
		Info:    "#0891b2", // cyan-600
	}
}
