package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wallflower/internal/appearance"
	"github.com/five82/wallflower/internal/browse"
	"github.com/five82/wallflower/internal/wallpaper"
)

const (
	cardHeight     = 5 // rounded border around three lines
	carouselHeight = 8 // title, bordered box of four lines, spacer
	sectionHeight  = 1
	favRowHeight   = 2
	favTop         = 1
)

// browseLayout maps the browse content onto lines.
type browseLayout struct {
	carousel bool
	items    int
	top      int // first grid line
	rows     int
	total    int
}

func newBrowseLayout(st browse.State) browseLayout {
	l := browseLayout{
		carousel: st.Mode == browse.ModeBrowse && browse.Featured(st.Items) != nil,
		items:    len(st.Items),
		rows:     (len(st.Items) + 1) / 2,
	}
	l.top = sectionHeight
	if l.carousel {
		l.top += carouselHeight
	}
	l.total = l.top + l.rows*cardHeight
	if l.items == 0 {
		l.total = l.top + 1 // empty state line
	}
	return l
}

// span returns the content lines [start, end) occupied by the selection.
func (l browseLayout) span(selected int) (int, int) {
	if selected == carouselFocus {
		return 0, carouselHeight
	}
	row := selected / 2
	start := l.top + row*cardHeight
	end := start + cardHeight
	if row == 0 {
		start -= sectionHeight
	}
	return start, end
}

func (m Model) layout() browseLayout {
	return newBrowseLayout(m.pager.State())
}

// featured returns the carousel items, or nil when there is no carousel.
func (m Model) featured() []wallpaper.Record {
	st := m.pager.State()
	if st.Mode != browse.ModeBrowse {
		return nil
	}
	return browse.Featured(st.Items)
}

// contentHeight is the number of lines between the header and the footer.
func (m Model) contentHeight() int {
	h := m.height - 2
	if m.searching {
		h--
	}
	return maxInt(1, h)
}

// ensureVisible clamps the browse selection and scrolls it into view.
func (m *Model) ensureVisible() {
	l := m.layout()
	switch {
	case l.items == 0:
		m.selected = 0
	case m.selected == carouselFocus && !l.carousel:
		m.selected = 0
	case m.selected < carouselFocus:
		m.selected = 0
	case m.selected >= l.items:
		m.selected = l.items - 1
	}

	h := m.contentHeight()
	start, end := l.span(m.selected)
	if start < m.offset {
		m.offset = start
	}
	if end > m.offset+h {
		m.offset = end - h
	}
	m.offset = maxInt(0, minInt(m.offset, l.total-h))
}

// ensureFavoriteVisible clamps the favorites selection and scrolls it into view.
func (m *Model) ensureFavoriteVisible() {
	n := m.favorites.Len()
	if m.favSelected >= n {
		m.favSelected = n - 1
	}
	if m.favSelected < 0 {
		m.favSelected = 0
	}

	h := m.contentHeight()
	start := favTop + m.favSelected*favRowHeight
	end := start + favRowHeight
	if m.favSelected == 0 {
		start = 0
	}
	if start < m.favOffset {
		m.favOffset = start
	}
	if end > m.favOffset+h {
		m.favOffset = end - h
	}
	total := favTop + maxInt(1, n)*favRowHeight
	m.favOffset = maxInt(0, minInt(m.favOffset, total-h))
}

// selectedRecord returns the focused carousel or grid item.
func (m Model) selectedRecord() (wallpaper.Record, bool) {
	if m.selected == carouselFocus {
		feat := m.featured()
		if len(feat) == 0 {
			return wallpaper.Record{}, false
		}
		return feat[m.carousel.Clamp(len(feat)).Index()], true
	}
	return m.pager.Item(m.selected)
}

func (m Model) selectedFavorite() (wallpaper.Record, bool) {
	list := m.favorites.List()
	if m.favSelected < 0 || m.favSelected >= len(list) {
		return wallpaper.Record{}, false
	}
	return list[m.favSelected], true
}

// renderMain renders header, content and footer.
func (m Model) renderMain() string {
	bg := NewBgStyle(m.theme.Background)
	h := m.contentHeight()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(bg.FillLine(" "+m.search.View(), m.width))
		b.WriteString("\n")
	}

	var lines []string
	offset := 0
	if m.screen == screenFavorites {
		lines = m.favoriteLines()
		offset = m.favOffset
	} else {
		lines = m.browseLines()
		offset = m.offset
	}
	for i := 0; i < h; i++ {
		line := ""
		if idx := offset + i; idx >= 0 && idx < len(lines) {
			line = lines[idx]
		}
		b.WriteString(bg.FillLine(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the top bar: logo, screen tabs and appearance.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	tab := func(label string, active bool) string {
		if active {
			return styles.Selected.Bold(true).Padding(0, 1).Render(label)
		}
		return bg.Render(" "+label+" ", styles.MutedText)
	}

	left := bg.Render("wallflower", styles.Logo) + bg.Spaces(2) +
		tab("Browse", m.screen == screenBrowse) + bg.Space() +
		tab(fmt.Sprintf("Favorites %d", m.favorites.Len()), m.screen == screenFavorites)

	var right []string
	if m.pager.Loading() {
		right = append(right, m.spinner.View()+bg.Space()+bg.Render("loading", styles.MutedText))
	}
	icon := "☾"
	if m.mode == appearance.Light {
		icon = "☀"
	}
	right = append(right,
		bg.Render(icon+" "+m.mode.String(), styles.AccentText),
		bg.Render(m.palette, styles.FaintText),
	)
	rightText := strings.Join(right, bg.Spaces(2))

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(rightText)
	return styles.Header.Width(m.width).Render(left + bg.Spaces(maxInt(1, gap)) + rightText)
}

// renderFooter shows a flash message when one is active and key hints otherwise.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	content := m.help.View(m.keys)
	if m.flash.text != "" {
		content = m.flashStyle(styles).Render(m.flash.text)
	}
	return styles.Footer.Width(m.width).Render(content)
}

func (m Model) flashStyle(styles Styles) lipgloss.Style {
	switch m.flash.kind {
	case flashSuccess:
		return styles.SuccessText
	case flashError:
		return styles.DangerText
	default:
		return styles.InfoText
	}
}

// browseLines renders the carousel, the section title and the card grid.
func (m Model) browseLines() []string {
	st := m.pager.State()
	l := newBrowseLayout(st)
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	width := maxInt(20, m.width-2)
	var lines []string

	if l.carousel {
		block := m.renderCarousel(browse.Featured(st.Items), styles, bg, width)
		lines = append(lines, strings.Split(block, "\n")...)
	}

	title := "All Wallpapers"
	if st.Mode == browse.ModeSearch {
		title = fmt.Sprintf("Results for %q", st.Query)
	}
	lines = append(lines, bg.Space()+bg.Render(title, styles.AccentText.Bold(true))+
		bg.Spaces(2)+bg.Render(fmt.Sprintf("%d loaded", l.items), styles.FaintText))

	if l.items == 0 {
		msg := "No wallpapers found. Press r to retry."
		if st.Loading {
			msg = "Loading wallpapers..."
		}
		return append(lines, bg.Space()+bg.Render(msg, styles.MutedText))
	}

	cardWidth := maxInt(16, (width-1)/2)
	for row := 0; row < l.rows; row++ {
		i := row * 2
		cells := []string{m.renderCard(st.Items[i], i == m.selected, styles, bg, cardWidth)}
		if i+1 < l.items {
			cells = append(cells, bg.Space(), m.renderCard(st.Items[i+1], i+1 == m.selected, styles, bg, cardWidth))
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		for _, line := range strings.Split(block, "\n") {
			lines = append(lines, bg.Space()+line)
		}
	}
	return lines
}

func (m Model) renderCarousel(feat []wallpaper.Record, styles Styles, bg BgStyle, width int) string {
	c := m.carousel.Clamp(len(feat))
	rec := feat[c.Index()]
	inner := width - 4

	dots := make([]string, len(feat))
	for i := range feat {
		if i == c.Index() {
			dots[i] = bg.Render("●", styles.AccentText)
		} else {
			dots[i] = bg.Render("○", styles.FaintText)
		}
	}

	body := strings.Join([]string{
		m.heart(rec, styles, bg) + bg.Space() + bg.Render(truncate(rec.Title(), inner-2), styles.Text.Bold(true)),
		bg.Render(truncate("by "+rec.Author()+" "+rec.Handle(), inner), styles.MutedText),
		bg.Render(truncateMiddle(rec.ImageURL, inner), styles.FaintText),
		strings.Join(dots, bg.Space()),
	}, "\n")

	box := m.boxStyle(styles, m.selected == carouselFocus).Width(width - 2).Render(body)
	title := bg.Space() + bg.Render("Featured", styles.AccentText.Bold(true)) +
		bg.Spaces(2) + bg.Render(fmt.Sprintf("%d/%d", c.Index()+1, len(feat)), styles.FaintText)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, line := range strings.Split(box, "\n") {
		b.WriteString(bg.Space() + line + "\n")
	}
	return b.String()
}

func (m Model) renderCard(rec wallpaper.Record, focused bool, styles Styles, bg BgStyle, width int) string {
	inner := width - 4
	body := strings.Join([]string{
		bg.Render(truncate(rec.Title(), inner), styles.Text.Bold(true)),
		bg.Render(truncate(rec.Author(), inner), styles.MutedText),
		m.heart(rec, styles, bg) + bg.Space() + bg.Render(truncate(rec.Handle(), inner-2), styles.FaintText),
	}, "\n")
	return m.boxStyle(styles, focused).Width(width - 2).Render(body)
}

func (m Model) boxStyle(styles Styles, focused bool) lipgloss.Style {
	style := styles.Card
	if focused {
		style = styles.CardFocus
	}
	bgc := lipgloss.Color(m.theme.Background)
	return style.Background(bgc).BorderBackground(bgc)
}

func (m Model) heart(rec wallpaper.Record, styles Styles, bg BgStyle) string {
	if m.favorites.IsFavorite(rec.ID) {
		return bg.Render("♥", styles.Heart)
	}
	return bg.Render("♡", styles.FaintText)
}

// favoriteLines renders the favorites screen, newest first.
func (m Model) favoriteLines() []string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	list := m.favorites.List()

	lines := []string{
		bg.Space() + bg.Render("Favorites", styles.AccentText.Bold(true)) +
			bg.Spaces(2) + bg.Render(fmt.Sprintf("%d saved", len(list)), styles.FaintText),
	}
	if len(list) == 0 {
		return append(lines,
			bg.Space()+bg.Render("No favorites yet", styles.MutedText),
			bg.Space()+bg.Render("Press f on a wallpaper to save it.", styles.FaintText),
		)
	}

	width := maxInt(20, m.width-4)
	for i, rec := range list {
		title := padRight(truncate(rec.Title(), width-2), width-2)
		meta := "by " + rec.Author() + " " + rec.Handle()
		if rec.AddedAt > 0 {
			meta += " · added " + time.UnixMilli(rec.AddedAt).Format("2006-01-02 15:04")
		}
		meta = padRight(truncate(meta, width-2), width-2)

		if i == m.favSelected {
			sel := styles.Selected
			lines = append(lines,
				bg.Space()+sel.Render("▸ ")+sel.Render(title),
				bg.Space()+sel.Render("  ")+sel.Render(meta),
			)
			continue
		}
		lines = append(lines,
			bg.Space()+bg.Space()+m.heart(rec, styles, bg)+bg.Space()+bg.Render(title, styles.Text),
			bg.Spaces(3)+bg.Space()+bg.Render(meta, styles.MutedText),
		)
	}
	return lines
}
