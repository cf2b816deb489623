package appearance

import (
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

// Detector reports the host color scheme.
type Detector interface {
	// Name identifies the detector in logs.
	Name() string
	// Priority orders detectors; higher runs first.
	Priority() int
	// Detect returns the host mode, or ok=false when the detector has no
	// answer.
	Detect() (mode Mode, ok bool)
}

// Resolver asks detectors in priority order and falls back to Dark.
type Resolver struct {
	detectors []Detector
}

// NewResolver sorts detectors by priority.
func NewResolver(detectors ...Detector) *Resolver {
	ds := append([]Detector(nil), detectors...)
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Priority() > ds[j].Priority() })
	return &Resolver{detectors: ds}
}

// Resolve returns the first answer and the name of the detector that gave
// it. source is empty when no detector answered and the fallback was used.
func (r *Resolver) Resolve() (mode Mode, source string) {
	if m, src, ok := r.Probe(); ok {
		return m, src
	}
	return Dark, ""
}

// Probe is Resolve without the fallback.
func (r *Resolver) Probe() (mode Mode, source string, ok bool) {
	if r == nil {
		return Dark, "", false
	}
	for _, d := range r.detectors {
		if m, ok := d.Detect(); ok {
			return m, d.Name(), true
		}
	}
	return Dark, "", false
}

// EnvVar overrides host detection when set to "light" or "dark".
const EnvVar = "WALLFLOWER_APPEARANCE"

// EnvDetector reads EnvVar.
type EnvDetector struct{}

func (EnvDetector) Name() string  { return "env" }
func (EnvDetector) Priority() int { return 100 }

func (EnvDetector) Detect() (Mode, bool) {
	v := strings.TrimSpace(os.Getenv(EnvVar))
	if v == "" {
		return Dark, false
	}
	m, err := ParseMode(v)
	return m, err == nil
}

// GSettingsDetector reads the GNOME/freedesktop color-scheme setting.
type GSettingsDetector struct {
	// Run executes gsettings and returns its output. Nil uses exec.
	Run func(ctx context.Context) (string, error)
}

func (GSettingsDetector) Name() string  { return "gsettings" }
func (GSettingsDetector) Priority() int { return 50 }

func (d GSettingsDetector) Detect() (Mode, bool) {
	run := d.Run
	if run == nil {
		if _, err := exec.LookPath("gsettings"); err != nil {
			return Dark, false
		}
		run = runGSettings
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, err := run(ctx)
	if err != nil {
		return Dark, false
	}
	return parseColorScheme(out)
}

func runGSettings(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	return string(out), err
}

func parseColorScheme(out string) (Mode, bool) {
	switch strings.Trim(strings.TrimSpace(out), "'\"") {
	case "prefer-dark":
		return Dark, true
	case "prefer-light", "default":
		return Light, true
	default:
		return Dark, false
	}
}

// TerminalDetector asks the terminal for its background color. The query
// reads from the terminal, so it must not run while the TUI owns input.
type TerminalDetector struct{}

func (TerminalDetector) Name() string  { return "terminal" }
func (TerminalDetector) Priority() int { return 10 }

func (TerminalDetector) Detect() (Mode, bool) {
	if termenv.HasDarkBackground() {
		return Dark, true
	}
	return Light, true
}

// StartupResolver includes the terminal query.
func StartupResolver() *Resolver {
	return NewResolver(EnvDetector{}, GSettingsDetector{}, TerminalDetector{})
}

// SessionResolver is safe to use while the TUI is running.
func SessionResolver() *Resolver {
	return NewResolver(EnvDetector{}, GSettingsDetector{})
}

// Fixed is a Detector that always answers with its mode.
type Fixed Mode

func (Fixed) Name() string           { return "fixed" }
func (Fixed) Priority() int          { return 0 }
func (f Fixed) Detect() (Mode, bool) { return Mode(f), true }
