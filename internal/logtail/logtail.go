package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed slog text record.
type Entry struct {
	Time    string
	Level   string
	Message string
	Attrs   string // remaining key=value pairs, unparsed
}

var recordPattern = regexp.MustCompile(`^time=(\S+) level=(\S+) msg=("(?:[^"\\]|\\.)*"|\S*)(?: (.*))?$`)

// Parse splits a slog text record into its fixed fields.
func Parse(line string) (Entry, bool) {
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	msg := m[3]
	if len(msg) >= 2 && strings.HasPrefix(msg, `"`) {
		msg = strings.ReplaceAll(msg[1:len(msg)-1], `\"`, `"`)
	}
	return Entry{Time: m[1], Level: m[2], Message: msg, Attrs: m[4]}, true
}

// Filter drops records below min. Unparsed lines are kept.
func Filter(lines []string, min slog.Level) []string {
	out := lines[:0:0]
	for _, line := range lines {
		e, ok := Parse(line)
		if ok && levelOf(e.Level) < min {
			continue
		}
		out = append(out, line)
	}
	return out
}

func levelOf(name string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Styles colors the parts of a record.
type Styles struct {
	Time    lipgloss.Style
	Debug   lipgloss.Style
	Info    lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Message lipgloss.Style
	Attrs   lipgloss.Style
}

// DefaultStyles returns styles that read on dark and light terminals.
func DefaultStyles() Styles {
	return Styles{
		Time:    lipgloss.NewStyle().Faint(true),
		Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Message: lipgloss.NewStyle(),
		Attrs:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Colorize renders one line with s. Lines that are not records come back
// unchanged.
func Colorize(line string, s Styles) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	var level lipgloss.Style
	switch l := levelOf(e.Level); {
	case l >= slog.LevelError:
		level = s.Error
	case l >= slog.LevelWarn:
		level = s.Warn
	case l >= slog.LevelInfo:
		level = s.Info
	default:
		level = s.Debug
	}

	var b strings.Builder
	b.WriteString(s.Time.Render(e.Time))
	b.WriteString(" ")
	b.WriteString(level.Render(fmt.Sprintf("%-5s", e.Level)))
	b.WriteString(" ")
	b.WriteString(s.Message.Render(e.Message))
	if e.Attrs != "" {
		b.WriteString(" ")
		b.WriteString(s.Attrs.Render(e.Attrs))
	}
	return b.String()
}

// ColorizeLines applies Colorize to every line.
func ColorizeLines(lines []string, s Styles) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Colorize(line, s)
	}
	return out
}
