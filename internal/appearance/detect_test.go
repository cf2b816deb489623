package appearance

import (
	"context"
	"errors"
	"testing"
)

type noAnswer struct{ priority int }

func (noAnswer) Name() string         { return "none" }
func (n noAnswer) Priority() int      { return n.priority }
func (noAnswer) Detect() (Mode, bool) { return Dark, false }

func TestResolverUsesPriorityOrder(t *testing.T) {
	r := NewResolver(Fixed(Dark), noAnswer{priority: 99}, namedFixed{Fixed(Light), "high", 50})
	mode, source := r.Resolve()
	if mode != Light || source != "high" {
		t.Fatalf("Resolve = %v from %q, want light from high", mode, source)
	}
}

func TestResolverFallsBackToDark(t *testing.T) {
	r := NewResolver(noAnswer{priority: 1})
	mode, source := r.Resolve()
	if mode != Dark || source != "" {
		t.Fatalf("Resolve = %v from %q, want dark fallback", mode, source)
	}
	if _, _, ok := r.Probe(); ok {
		t.Fatalf("Probe ok = true with no answers")
	}
}

func TestEnvDetector(t *testing.T) {
	t.Setenv(EnvVar, "Light")
	if m, ok := (EnvDetector{}).Detect(); !ok || m != Light {
		t.Fatalf("Detect = %v, %v; want light, true", m, ok)
	}
	t.Setenv(EnvVar, "purple")
	if _, ok := (EnvDetector{}).Detect(); ok {
		t.Fatalf("Detect ok = true for invalid value")
	}
	t.Setenv(EnvVar, "")
	if _, ok := (EnvDetector{}).Detect(); ok {
		t.Fatalf("Detect ok = true for empty value")
	}
}

func TestGSettingsDetector(t *testing.T) {
	cases := []struct {
		out    string
		err    error
		want   Mode
		wantOK bool
	}{
		{"'prefer-dark'\n", nil, Dark, true},
		{"'prefer-light'\n", nil, Light, true},
		{"'default'\n", nil, Light, true},
		{"'something-else'\n", nil, Dark, false},
		{"", errors.New("no schema"), Dark, false},
	}
	for _, tc := range cases {
		d := GSettingsDetector{Run: func(context.Context) (string, error) { return tc.out, tc.err }}
		m, ok := d.Detect()
		if ok != tc.wantOK || (ok && m != tc.want) {
			t.Fatalf("Detect(%q) = %v, %v; want %v, %v", tc.out, m, ok, tc.want, tc.wantOK)
		}
	}
}

type namedFixed struct {
	Fixed
	name     string
	priority int
}

func (n namedFixed) Name() string  { return n.name }
func (n namedFixed) Priority() int { return n.priority }
