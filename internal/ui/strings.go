package ui

import "strings"

const (
	descriptionLineWidth = 30
	descriptionLines     = 2
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and end. Used for URLs and paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	ellipsis := []rune("…")
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - len(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + string(ellipsis) + string(runes[len(runes)-suffix:])
}

// wrapWords breaks value into lines of at most width runes. Words longer
// than width are split.
func wrapWords(value string, width int) []string {
	words := strings.Fields(value)
	if len(words) == 0 || width <= 0 {
		return nil
	}
	var (
		lines []string
		line  []rune
	)
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, string(line))
			line = line[:0]
		}
	}
	for _, w := range words {
		word := []rune(w)
		for len(word) > width {
			flush()
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(line) == 0:
			line = append(line, word...)
		case len(line)+1+len(word) <= width:
			line = append(line, ' ')
			line = append(line, word...)
		default:
			flush()
			line = append(line, word...)
		}
	}
	flush()
	return lines
}

// truncateDescription wraps a description to two 30-column lines and marks
// anything cut off with "...". Empty descriptions get a placeholder title.
func truncateDescription(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{"Untitled Wallpaper"}
	}
	lines := wrapWords(value, descriptionLineWidth)
	if len(lines) <= descriptionLines {
		return lines
	}
	lines = lines[:descriptionLines]
	last := []rune(lines[descriptionLines-1])
	if len(last)+3 > descriptionLineWidth {
		last = last[:descriptionLineWidth-3]
	}
	lines[descriptionLines-1] = strings.TrimRight(string(last), " ") + "..."
	return lines
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minInt returns the smaller of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
