package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
		ok    bool
	}{
		{
			name:  "quoted message with attrs",
			input: `time=2026-10-17T09:12:44.120+02:00 level=WARN msg="fetch failed" component=browse error="network error"`,
			want: Entry{
				Time:    "2026-10-17T09:12:44.120+02:00",
				Level:   "WARN",
				Message: "fetch failed",
				Attrs:   `component=browse error="network error"`,
			},
			ok: true,
		},
		{
			name:  "bare message",
			input: "time=2026-10-17T09:12:44.120+02:00 level=INFO msg=started",
			want:  Entry{Time: "2026-10-17T09:12:44.120+02:00", Level: "INFO", Message: "started"},
			ok:    true,
		},
		{
			name:  "escaped quotes",
			input: `time=t level=ERROR msg="save \"a\" failed" id=a`,
			want:  Entry{Time: "t", Level: "ERROR", Message: `save "a" failed`, Attrs: "id=a"},
			ok:    true,
		},
		{
			name:  "not a record",
			input: "panic: runtime error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		"time=t level=DEBUG msg=a",
		"time=t level=INFO msg=b",
		"goroutine 1 [running]:",
		"time=t level=WARN msg=c",
		"time=t level=ERROR msg=d",
	}

	got := Filter(lines, slog.LevelWarn)
	want := []string{lines[2], lines[3], lines[4]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}

	if got := Filter(lines, slog.LevelDebug); len(got) != len(lines) {
		t.Fatalf("Filter(debug) kept %d lines, want %d", len(got), len(lines))
	}
}

func TestColorize(t *testing.T) {
	plain := Styles{
		Time:    lipgloss.NewStyle(),
		Debug:   lipgloss.NewStyle(),
		Info:    lipgloss.NewStyle(),
		Warn:    lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Message: lipgloss.NewStyle(),
		Attrs:   lipgloss.NewStyle(),
	}

	input := []string{
		`time=t level=WARN msg="fetch failed" component=browse`,
		"    at main.go:12",
	}
	got := ColorizeLines(input, plain)
	want := []string{
		"t WARN  fetch failed component=browse",
		"    at main.go:12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ColorizeLines() = %q, want %q", got, want)
	}
}
