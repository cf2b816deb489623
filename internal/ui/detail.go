package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const detailWidth = 48

// renderDetail renders the wallpaper detail modal.
func (m Model) renderDetail() string {
	rec := *m.detail
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	inner := detailWidth - 4

	var b strings.Builder

	for _, line := range truncateDescription(rec.Description) {
		b.WriteString(bg.Render(line, styles.Text.Bold(true)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(bg.Render("Photo by", styles.FaintText))
	b.WriteString("\n")
	b.WriteString(bg.Render(truncate(rec.Author(), inner), styles.Text))
	b.WriteString("\n")
	b.WriteString(bg.Render(truncate(rec.Handle(), inner), styles.AccentText))
	b.WriteString("\n\n")

	if m.favorites.IsFavorite(rec.ID) {
		b.WriteString(bg.Render("♥ In your favorites", styles.Heart))
	} else {
		b.WriteString(bg.Render("♡ Not in favorites", styles.MutedText))
	}
	b.WriteString("\n")
	b.WriteString(bg.Render(truncateMiddle(rec.DownloadURL(), inner), styles.FaintText))
	b.WriteString("\n\n")

	actions := []struct{ key, label string }{
		{"f", ternary(m.favorites.IsFavorite(rec.ID), "Unfavorite", "Favorite")},
		{"s", "Share"},
		{"d", "Get Wallpaper"},
	}
	keyStyle := styles.WarningText.Bold(true)
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, bg.Render(a.key, keyStyle)+bg.Space()+bg.Render(a.label, styles.MutedText))
	}
	b.WriteString(strings.Join(parts, bg.Spaces(2)))
	b.WriteString("\n")
	b.WriteString(bg.Render("esc", keyStyle) + bg.Space() + bg.Render("Close", styles.FaintText))

	if m.flash.text != "" {
		b.WriteString("\n\n")
		b.WriteString(bg.Render(m.flash.text, m.flashStyle(styles)))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 2).
		Width(detailWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}
