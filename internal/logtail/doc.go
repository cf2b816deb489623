// Package logtail reads the end of wallflower's log file and highlights its
// records for terminal display.
//
// Read keeps a ring of the last N lines, so memory stays bounded by N no
// matter how large the file grows. A missing file reads as empty.
//
// Parse understands the key=value records written by log/slog's text
// handler:
//
//	time=2026-10-17T09:12:44.120+02:00 level=WARN msg="fetch failed" component=browse error="network error"
//
// Lines that are not slog records (panics, stray output) are passed through
// untouched by Colorize and always pass a level filter.
package logtail
